package models

import (
	"time"
)

// MealType identifies which meal of the day a record belongs to
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the known meal types in display order
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether t is one of the known meal types
func (t MealType) Valid() bool {
	for _, known := range MealTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MealRecord represents a single logged eating event
type MealRecord struct {
	ID          string    `json:"id"`
	MealType    MealType  `json:"meal_type"`
	Description string    `json:"description"`
	ImageRef    string    `json:"image_ref,omitempty"` // reference to an uploaded photo
	Timestamp   time.Time `json:"timestamp"`

	// QualityScore is the 1-10 rating from meal analysis. When set it takes
	// precedence over keyword estimation.
	QualityScore *float64 `json:"quality_score,omitempty"`

	Analysis      *MealAnalysis `json:"analysis,omitempty"`
	AnalysisError string        `json:"analysis_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Day returns the calendar day the meal was logged on, as YYYY-MM-DD
func (m *MealRecord) Day() string {
	return m.Timestamp.Format(DayLayout)
}

// DayLayout is the date format used to key meals and flowers by day
const DayLayout = "2006-01-02"

// BalanceIndicator is a coarse bucket of how substantial a meal was
type BalanceIndicator string

const (
	BalanceLight       BalanceIndicator = "light"
	BalanceModerate    BalanceIndicator = "moderate"
	BalanceSubstantial BalanceIndicator = "substantial"
	BalanceAbundant    BalanceIndicator = "abundant"
)

// NourishmentEstimate is derived from a single meal and never persisted
type NourishmentEstimate struct {
	NourishmentScore float64          `json:"nourishment_score"` // 0-40
	EnergyLevel      float64          `json:"energy_level"`      // 0-100
	Balance          BalanceIndicator `json:"balance_indicator"`
	Message          string           `json:"message"`
}

// DailyProgress aggregates all meals logged on one day
type DailyProgress struct {
	TotalNourishmentPercent float64 `json:"total_nourishment_percent"` // 0-100
	TotalNourishmentRaw     float64 `json:"total_nourishment_raw"`
	MealCount               int     `json:"meal_count"`
	BalanceAchieved         bool    `json:"balance_achieved"`
	FlowerGrowthStage       int     `json:"flower_growth_stage"` // 0-11
	Feedback                string  `json:"feedback"`
}

// MealAnalysis is the result of the external meal analysis. Only OverallScore
// feeds the nourishment model; the rest is carried through for display.
type MealAnalysis struct {
	MealID                string         `json:"meal_id"`
	OverallScore          int            `json:"overall_score"` // 1-10
	OverallAssessment     string         `json:"overall_assessment"`
	KeyNutrients          []NutrientInfo `json:"key_nutrients,omitempty"`
	PositiveAspects       []HealthAspect `json:"positive_aspects,omitempty"`
	AreasForImprovement   []HealthAspect `json:"areas_for_improvement,omitempty"`
	NutritionalHighlights string         `json:"nutritional_highlights,omitempty"`
	Encouragement         string         `json:"encouragement,omitempty"`
	ProcessingLevel       string         `json:"processing_level,omitempty"` // "minimal", "moderate", "highly_processed"
	EstimatedCalories     *int           `json:"estimated_calories,omitempty"`
}

type NutrientInfo struct {
	Name                 string   `json:"name"`
	Amount               string   `json:"amount"`
	DailyValuePercentage *float64 `json:"daily_value_percentage,omitempty"`
	HealthImpact         string   `json:"health_impact"` // "positive", "neutral", "negative"
}

type HealthAspect struct {
	Aspect      string `json:"aspect"`
	Impact      string `json:"impact"` // "positive" or "negative"
	Explanation string `json:"explanation"`
	Severity    string `json:"severity"` // "low", "moderate", "high"
}
