// Package nourish turns logged meals into bounded nourishment scores and
// aggregates a day's meals into progress toward the daily target.
package nourish

import (
	"strings"

	"github.com/franckalain/nourishbloom/internal/models"
)

const (
	// MaxScore is the largest nourishment score a single meal can report.
	MaxScore = 40

	// headroomCap bounds the raw keyword total before MaxScore is applied.
	headroomCap = 45

	complexityBonus     = 1.2
	complexityThreshold = 2
	breakfastBonus      = 1.1

	// qualityMultiplier converts a 1-10 analysis score into nourishment points.
	qualityMultiplier = 4
	minQuality        = 1
	maxQuality        = 10
)

// Estimate scores a single meal. A quality score from meal analysis wins over
// keyword matching on the description.
func Estimate(meal models.MealRecord) models.NourishmentEstimate {
	score := Score(meal)
	balance := BalanceFor(score)
	return models.NourishmentEstimate{
		NourishmentScore: score,
		EnergyLevel:      EnergyLevel(score),
		Balance:          balance,
		Message:          MealMessage(meal.MealType, balance),
	}
}

// Score returns the nourishment points of a meal, in [0, MaxScore].
func Score(meal models.MealRecord) float64 {
	if meal.QualityScore != nil {
		return QualityToScore(*meal.QualityScore)
	}
	return keywordScore(meal.MealType, meal.Description)
}

// QualityToScore maps a 1-10 quality rating onto nourishment points.
// Ratings outside the scale are clamped.
func QualityToScore(quality float64) float64 {
	quality = min(max(quality, minQuality), maxQuality)
	return quality * qualityMultiplier
}

func keywordScore(mealType models.MealType, description string) float64 {
	description = strings.ToLower(description)

	var total float64
	matched := 0
	for _, kw := range nourishmentValues {
		if strings.Contains(description, kw.food) {
			total += kw.value
			matched++
		}
	}

	if matched > complexityThreshold {
		total *= complexityBonus
	}
	if mealType == models.MealBreakfast {
		total *= breakfastBonus
	}

	total = min(total, headroomCap)
	return min(total, MaxScore)
}

// EnergyLevel scales a nourishment score onto 0-100 for display.
func EnergyLevel(score float64) float64 {
	return min(score*2.5, 100)
}

// BalanceFor buckets a nourishment score.
func BalanceFor(score float64) models.BalanceIndicator {
	switch {
	case score >= 35:
		return models.BalanceAbundant
	case score >= 25:
		return models.BalanceSubstantial
	case score >= 15:
		return models.BalanceModerate
	default:
		return models.BalanceLight
	}
}
