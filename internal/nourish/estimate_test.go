package nourish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franckalain/nourishbloom/internal/models"
)

func meal(mealType models.MealType, description string) models.MealRecord {
	return models.MealRecord{ID: "m", MealType: mealType, Description: description}
}

func quality(q float64) *float64 { return &q }

func TestEstimate_BreakfastCapsAtMaxScore(t *testing.T) {
	est := Estimate(meal(models.MealBreakfast, "Eggs and Avocado"))

	assert.Equal(t, 40.0, est.NourishmentScore)
	assert.Equal(t, 100.0, est.EnergyLevel)
	assert.Equal(t, models.BalanceAbundant, est.Balance)
	assert.Equal(t, mealMessages[models.MealBreakfast][models.BalanceAbundant], est.Message)
}

func TestEstimate_QualityScoreWins(t *testing.T) {
	m := meal(models.MealLunch, "eggs and avocado and salmon")
	m.QualityScore = quality(8)

	est := Estimate(m)
	assert.Equal(t, 32.0, est.NourishmentScore)
	assert.Equal(t, 80.0, est.EnergyLevel)
	assert.Equal(t, models.BalanceSubstantial, est.Balance)
}

func TestQualityToScore_Clamps(t *testing.T) {
	assert.Equal(t, 4.0, QualityToScore(1))
	assert.Equal(t, 40.0, QualityToScore(10))
	assert.Equal(t, 4.0, QualityToScore(-3))
	assert.Equal(t, 40.0, QualityToScore(25))
}

func TestEstimate_KeywordPath(t *testing.T) {
	tests := []struct {
		name    string
		meal    models.MealRecord
		score   float64
		balance models.BalanceIndicator
	}{
		{"empty description", meal(models.MealDinner, ""), 0, models.BalanceLight},
		{"no matches", meal(models.MealDinner, "something mysterious"), 0, models.BalanceLight},
		{"single item", meal(models.MealSnack, "an apple"), 8, models.BalanceLight},
		{"breakfast bonus", meal(models.MealBreakfast, "banana"), 13.2, models.BalanceLight},
		{"complexity bonus", meal(models.MealLunch, "apple, spinach and tomato"), 22.8, models.BalanceModerate},
		{"two items no bonus", meal(models.MealSnack, "yogurt with apple"), 26, models.BalanceSubstantial},
		{"overlapping keywords both count", meal(models.MealLunch, "roasted sweet potato"), 32, models.BalanceSubstantial},
		{"below cap", meal(models.MealLunch, "banana smoothie"), 37, models.BalanceAbundant},
		{"above cap", meal(models.MealLunch, "chicken salad with rice"), 40, models.BalanceAbundant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Estimate(tt.meal)
			assert.InDelta(t, tt.score, est.NourishmentScore, 1e-9)
			assert.Equal(t, tt.balance, est.Balance)
			assert.InDelta(t, min(tt.score*2.5, 100), est.EnergyLevel, 1e-9)
		})
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	m := meal(models.MealDinner, "salmon with quinoa, broccoli and olive oil")
	assert.Equal(t, Estimate(m), Estimate(m))
}

func TestEstimate_ScoreAlwaysBounded(t *testing.T) {
	descriptions := []string{
		"",
		"beef chicken salmon eggs olive oil butter bowl stir fry pasta dish",
		"nut butter and peanut butter on bread with banana",
		"water",
	}
	for _, mt := range append(models.MealTypes, "brunch") {
		for _, d := range descriptions {
			score := Estimate(meal(mt, d)).NourishmentScore
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, float64(MaxScore))
		}
	}
}

func TestBalanceFor_Thresholds(t *testing.T) {
	assert.Equal(t, models.BalanceLight, BalanceFor(14.99))
	assert.Equal(t, models.BalanceModerate, BalanceFor(15))
	assert.Equal(t, models.BalanceSubstantial, BalanceFor(25))
	assert.Equal(t, models.BalanceSubstantial, BalanceFor(34.9))
	assert.Equal(t, models.BalanceAbundant, BalanceFor(35))
}

func TestMealMessage(t *testing.T) {
	for _, mt := range models.MealTypes {
		for _, b := range []models.BalanceIndicator{
			models.BalanceLight, models.BalanceModerate, models.BalanceSubstantial, models.BalanceAbundant,
		} {
			assert.NotEqual(t, GenericMessage, MealMessage(mt, b), "%s/%s", mt, b)
		}
	}

	assert.Equal(t, GenericMessage, MealMessage("brunch", models.BalanceLight))
	assert.Equal(t, GenericMessage, MealMessage(models.MealLunch, "enormous"))
}

func TestRecoveryScore(t *testing.T) {
	assert.Equal(t, 31, RecoveryScore(nil, models.MealLunch, "Grilled chicken"))
	assert.Equal(t, 50, RecoveryScore(&models.MealAnalysis{OverallScore: 10}, models.MealBreakfast, "eggs with avocado and salmon"))
	assert.Equal(t, 13, RecoveryScore(&models.MealAnalysis{OverallScore: 4}, models.MealSnack, "apple"))
	// unknown meal type keeps the neutral multiplier
	assert.Equal(t, 25, RecoveryScore(nil, "brunch", "toast"))
}
