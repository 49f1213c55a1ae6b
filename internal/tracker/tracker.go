// Package tracker ties the meal journal, meal analysis and the nourishment
// model together into the operations the API exposes.
package tracker

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franckalain/nourishbloom/internal/database"
	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/ml"
	"github.com/franckalain/nourishbloom/internal/models"
	"github.com/franckalain/nourishbloom/internal/nourish"
)

var (
	ErrInvalidMeal = errors.New("invalid meal")
	ErrNotFound    = errors.New("not found")
)

// analysisUnavailable is stored on a meal whose analysis failed.
const analysisUnavailable = "Analysis temporarily unavailable"

var validate = validator.New()

// LogMealRequest is a meal as submitted by the user
type LogMealRequest struct {
	MealType     string     `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Description  string     `json:"description" validate:"required_without_all=ImageBase64 ImageRef,max=2000"`
	ImageBase64  string     `json:"image_base64,omitempty" validate:"omitempty,base64"`
	ImageRef     string     `json:"image_ref,omitempty" validate:"omitempty,max=512"`
	QualityScore *float64   `json:"quality_score,omitempty" validate:"omitempty,gte=1,lte=10"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

// ValidateLogMealRequest checks a request before anything is stored
func ValidateLogMealRequest(req *LogMealRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMeal, err)
	}
	return nil
}

// MealView is a stored meal together with its derived scores
type MealView struct {
	models.MealRecord
	Estimate      models.NourishmentEstimate `json:"estimate"`
	RecoveryScore int                        `json:"recovery_score"`
}

// Milestone is reported when the day's flower grows past its last seen stage
type Milestone struct {
	PreviousStage int    `json:"previous_stage"`
	Stage         int    `json:"stage"`
	Message       string `json:"message"`
}

// DaySummary is everything the app shows for one day
type DaySummary struct {
	Date          string               `json:"date"`
	Meals         []MealView           `json:"meals"`
	Progress      models.DailyProgress `json:"progress"`
	Flower        models.DailyFlower   `json:"flower"`
	Stage         models.FlowerStage   `json:"stage"`
	FlowerMessage string               `json:"flower_message"`
	Milestone     *Milestone           `json:"milestone,omitempty"`
}

// LogMealResult is returned after a meal is logged
type LogMealResult struct {
	Meal MealView    `json:"meal"`
	Day  *DaySummary `json:"day"`
}

// Service implements the meal tracking operations
type Service struct {
	db       database.DB
	analyzer ml.MealAnalyzer
	selector *flower.Selector
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time

	// serializes reading a day's meals with the read-modify-write of its
	// stored flower state
	dayMu sync.Mutex
}

// New creates a tracker. analyzer may be nil, in which case meals are scored
// from their description only.
func New(db database.DB, analyzer ml.MealAnalyzer, selector *flower.Selector, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:       db,
		analyzer: analyzer,
		selector: selector,
		loc:      loc,
		log:      log.Named("tracker"),
		now:      time.Now,
	}
}

// LogMeal validates, stores and analyzes a meal, then recomputes its day
func (s *Service) LogMeal(ctx context.Context, req LogMealRequest) (*LogMealResult, error) {
	meal, image, err := s.buildMeal(&req)
	if err != nil {
		return nil, err
	}
	meal.ID = uuid.NewString()

	if err := s.db.SaveMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	s.log.Info("meal logged",
		zap.String("meal_id", meal.ID), zap.String("meal_type", string(meal.MealType)), zap.String("day", meal.Day()))

	if s.analyzer != nil && meal.QualityScore == nil {
		s.analyze(ctx, meal, image)
	}

	day, err := s.Day(ctx, meal.Timestamp)
	if err != nil {
		return nil, err
	}
	return &LogMealResult{Meal: view(*meal), Day: day}, nil
}

// analyze runs meal analysis. Failures are recorded on the meal and never
// fail the log: the meal still counts through keyword estimation.
func (s *Service) analyze(ctx context.Context, meal *models.MealRecord, image []byte) {
	analysis, err := s.analyzer.AnalyzeMeal(ctx, ml.MealAnalysisRequest{
		MealID:      meal.ID,
		MealType:    meal.MealType,
		Description: meal.Description,
		Image:       image,
	})
	if err != nil {
		s.log.Warn("meal analysis failed", zap.String("meal_id", meal.ID), zap.Error(err))
		meal.AnalysisError = analysisUnavailable
	} else {
		q := float64(analysis.OverallScore)
		meal.Analysis = analysis
		meal.QualityScore = &q
		s.log.Debug("meal analyzed", zap.String("meal_id", meal.ID), zap.Int("overall_score", analysis.OverallScore))
	}

	if err := s.db.UpdateMealAnalysis(ctx, meal.ID, meal.Analysis, meal.AnalysisError); err != nil {
		s.log.Error("failed to store meal analysis", zap.String("meal_id", meal.ID), zap.Error(err))
	}
}

// Estimate scores a meal without storing it
func (s *Service) Estimate(req LogMealRequest) (*MealView, error) {
	meal, _, err := s.buildMeal(&req)
	if err != nil {
		return nil, err
	}
	v := view(*meal)
	return &v, nil
}

func (s *Service) buildMeal(req *LogMealRequest) (*models.MealRecord, []byte, error) {
	if err := ValidateLogMealRequest(req); err != nil {
		return nil, nil, err
	}

	var image []byte
	if req.ImageBase64 != "" {
		var err error
		if image, err = base64.StdEncoding.DecodeString(req.ImageBase64); err != nil {
			return nil, nil, fmt.Errorf("%w: image is not valid base64", ErrInvalidMeal)
		}
	}

	ts := s.now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	return &models.MealRecord{
		MealType:     models.MealType(req.MealType),
		Description:  req.Description,
		ImageRef:     req.ImageRef,
		Timestamp:    ts.In(s.loc),
		QualityScore: req.QualityScore,
	}, image, nil
}

// Day recomputes the summary for the calendar day containing date
func (s *Service) Day(ctx context.Context, date time.Time) (*DaySummary, error) {
	date = date.In(s.loc)
	key := date.Format(models.DayLayout)

	s.dayMu.Lock()
	defer s.dayMu.Unlock()

	meals, err := s.db.ListMealsForDay(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals for %s: %w", key, err)
	}

	progress := nourish.CalculateDailyProgress(meals)

	stored, err := s.db.GetFlowerDay(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load flower for %s: %w", key, err)
	}

	flowerType := s.flowerFor(date, stored)
	df := flower.Grow(progress.TotalNourishmentPercent, date, flowerType)

	summary := &DaySummary{
		Date:          key,
		Meals:         make([]MealView, 0, len(meals)),
		Progress:      progress,
		Flower:        df,
		Stage:         flower.StageInfo(df.CurrentStage),
		FlowerMessage: flower.Message(df),
	}
	for _, m := range meals {
		summary.Meals = append(summary.Meals, view(m))
	}

	previous := 0
	if stored != nil {
		previous = stored.LastStage
	}
	if flower.CheckMilestone(previous, df.CurrentStage) {
		summary.Milestone = &Milestone{
			PreviousStage: previous,
			Stage:         df.CurrentStage,
			Message:       flower.MilestoneMessage(df.CurrentStage, flowerType),
		}
		s.log.Info("flower milestone",
			zap.String("day", key), zap.Int("from", previous), zap.Int("to", df.CurrentStage))
	}

	// days nobody has logged on stay stateless
	changed := stored == nil || stored.LastStage != df.CurrentStage || stored.FlowerID != flowerType.ID
	if changed && (stored != nil || len(meals) > 0) {
		err := s.db.SaveFlowerDay(ctx, &models.FlowerDay{Day: key, FlowerID: flowerType.ID, LastStage: df.CurrentStage})
		if err != nil {
			return nil, fmt.Errorf("failed to save flower for %s: %w", key, err)
		}
	}

	return summary, nil
}

// flowerFor keeps the day's stored flower in daily mode; random mode draws
// a new one on every call.
func (s *Service) flowerFor(date time.Time, stored *models.FlowerDay) models.FlowerType {
	if stored != nil && s.selector.Mode() == flower.SelectDaily {
		if ft, ok := flower.TypeByID(stored.FlowerID); ok {
			return ft
		}
	}
	return s.selector.Today(date)
}

// DayByKey is Day for a YYYY-MM-DD string
func (s *Service) DayByKey(ctx context.Context, day string) (*DaySummary, error) {
	date, err := time.ParseInLocation(models.DayLayout, day, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidMeal, day)
	}
	return s.Day(ctx, date)
}

// Today is Day for the current date
func (s *Service) Today(ctx context.Context) (*DaySummary, error) {
	return s.Day(ctx, s.now())
}

// Recent returns the latest meals across all days, newest first
func (s *Service) Recent(ctx context.Context, limit int) ([]MealView, error) {
	if limit <= 0 {
		limit = 20
	}
	meals, err := s.db.GetRecentMeals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent meals: %w", err)
	}
	views := make([]MealView, 0, len(meals))
	for _, m := range meals {
		views = append(views, view(m))
	}
	return views, nil
}

// DeleteMeal removes a meal and returns its day recomputed
func (s *Service) DeleteMeal(ctx context.Context, id string) (*DaySummary, error) {
	meal, err := s.db.GetMeal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal %s: %w", id, err)
	}
	if meal == nil {
		return nil, fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}

	if _, err := s.db.DeleteMeal(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info("meal deleted", zap.String("meal_id", id))
	return s.Day(ctx, meal.Timestamp)
}

func view(m models.MealRecord) MealView {
	return MealView{
		MealRecord:    m,
		Estimate:      nourish.Estimate(m),
		RecoveryScore: nourish.RecoveryScore(m.Analysis, m.MealType, m.Description),
	}
}
