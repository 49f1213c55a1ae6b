package ml

import (
	"context"
	"errors"
	"fmt"

	"github.com/franckalain/nourishbloom/internal/models"
)

// ErrAnalyzerNotLoaded is returned when AnalyzeMeal is called before Load.
var ErrAnalyzerNotLoaded = errors.New("analyzer not loaded")

// MealAnalysisRequest is what the analyzer needs to rate a meal
type MealAnalysisRequest struct {
	MealID      string
	MealType    models.MealType
	Description string
	Image       []byte // optional JPEG/PNG bytes
}

// MealAnalyzer rates a logged meal and explains the rating
type MealAnalyzer interface {
	// Load initializes the analyzer with its configuration
	Load(ctx context.Context) error
	// AnalyzeMeal returns an analysis whose OverallScore is in 1..10
	AnalyzeMeal(ctx context.Context, req MealAnalysisRequest) (*models.MealAnalysis, error)
}

// AnalyzerFactory creates a new analyzer instance based on configuration
type AnalyzerFactory interface {
	CreateAnalyzer() (MealAnalyzer, error)
}

// NewAnalyzer creates an analyzer of the given type. configPath points at an
// analyzer-specific config file and may be empty.
func NewAnalyzer(analyzerType, configPath string) (MealAnalyzer, error) {
	var factory AnalyzerFactory

	switch analyzerType {
	case "google":
		config := GoogleConfig{
			BaseConfig: BaseConfig{
				ConfigPath: configPath,
			},
		}
		if err := config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Google config: %w", err)
		}
		factory = NewGoogleAnalyzerFactory(config)
	case "local", "":
		config := LocalConfig{
			BaseConfig: BaseConfig{
				ConfigPath: configPath,
			},
		}
		if err := config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
		factory = NewLocalAnalyzerFactory(config)
	default:
		return nil, fmt.Errorf("unsupported analyzer type: %s", analyzerType)
	}
	return factory.CreateAnalyzer()
}

func validateScore(a *models.MealAnalysis) error {
	if a.OverallScore < 1 || a.OverallScore > 10 {
		return fmt.Errorf("overall_score %d outside 1-10", a.OverallScore)
	}
	return nil
}
