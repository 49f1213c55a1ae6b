package ml

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/franckalain/nourishbloom/internal/models"
	"github.com/franckalain/nourishbloom/internal/nourish"
)

// LocalConfig holds configuration for the keyword-based analyzer
type LocalConfig struct {
	BaseConfig
	// MinScore is the floor applied to every rating, 1 by default.
	MinScore int `json:"min_score"`
}

// Load loads the local configuration
func (c *LocalConfig) Load() error {
	if err := c.LoadConfig(c.ConfigPath, "local", c); err != nil {
		return err
	}

	if c.MinScore == 0 {
		if v := os.Getenv("LOCAL_MIN_SCORE"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid LOCAL_MIN_SCORE: %w", err)
			}
			c.MinScore = n
		}
	}
	if c.MinScore < 1 || c.MinScore > 10 {
		c.MinScore = 1
	}
	return nil
}

// LocalAnalyzer rates meals offline from their description
type LocalAnalyzer struct {
	config LocalConfig
	loaded bool
}

// LocalAnalyzerFactory implements AnalyzerFactory for local analyzers
type LocalAnalyzerFactory struct {
	config LocalConfig
}

func NewLocalAnalyzerFactory(config LocalConfig) *LocalAnalyzerFactory {
	return &LocalAnalyzerFactory{config: config}
}

func (f *LocalAnalyzerFactory) CreateAnalyzer() (MealAnalyzer, error) {
	return &LocalAnalyzer{
		config: f.config,
	}, nil
}

func (a *LocalAnalyzer) Load(ctx context.Context) error {
	a.loaded = true
	return nil
}

// AnalyzeMeal converts the keyword estimate back onto the 1-10 scale.
func (a *LocalAnalyzer) AnalyzeMeal(ctx context.Context, req MealAnalysisRequest) (*models.MealAnalysis, error) {
	if !a.loaded {
		return nil, ErrAnalyzerNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	est := nourish.Estimate(models.MealRecord{
		ID:          req.MealID,
		MealType:    req.MealType,
		Description: req.Description,
	})

	score := int(math.Round(est.NourishmentScore / 4))
	score = min(max(score, a.config.MinScore), 10)

	return &models.MealAnalysis{
		MealID:            req.MealID,
		OverallScore:      score,
		OverallAssessment: fmt.Sprintf("A %s %s.", est.Balance, req.MealType),
		Encouragement:     est.Message,
	}, nil
}
