package nourish

import (
	"math"
	"strings"

	"github.com/franckalain/nourishbloom/internal/models"
)

const (
	// defaultAnalysisScore stands in when a meal has no analysis yet.
	defaultAnalysisScore = 7
	maxRecoveryScore     = 50
	recoveryScale        = 3.5
)

var mealTypeBonus = map[models.MealType]float64{
	models.MealBreakfast: 1.2,
	models.MealLunch:     1.1,
	models.MealDinner:    1.15,
	models.MealSnack:     0.9,
}

// RecoveryScore rates a meal card on a 0-50 scale from its analysis score,
// meal type and energy-dense ingredients.
func RecoveryScore(analysis *models.MealAnalysis, mealType models.MealType, description string) int {
	base := float64(defaultAnalysisScore)
	if analysis != nil && analysis.OverallScore != 0 {
		base = float64(analysis.OverallScore)
	}

	multiplier := 1.0
	if bonus, ok := mealTypeBonus[mealType]; ok {
		multiplier *= bonus
	}

	description = strings.ToLower(description)
	multiplier += float64(countContained(description, calorieDenseWords)) * 0.1
	if countContained(description, proteinWords) > 0 {
		multiplier += 0.15
	}
	if countContained(description, healthyFatWords) > 0 {
		multiplier += 0.15
	}

	return int(math.Round(min(maxRecoveryScore, base*multiplier*recoveryScale)))
}

func countContained(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}
