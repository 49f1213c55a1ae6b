package nourish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/models"
)

func TestCalculateDailyProgress_Empty(t *testing.T) {
	p := CalculateDailyProgress(nil)

	assert.Equal(t, 0.0, p.TotalNourishmentPercent)
	assert.Equal(t, 0, p.MealCount)
	assert.Equal(t, 0, p.FlowerGrowthStage)
	assert.False(t, p.BalanceAchieved)
	assert.Equal(t, DailyFeedback(0, 0), p.Feedback)
}

func TestCalculateDailyProgress_FullDay(t *testing.T) {
	meals := []models.MealRecord{
		meal(models.MealBreakfast, "eggs and avocado"),
		meal(models.MealLunch, "chicken salad with rice"),
	}

	p := CalculateDailyProgress(meals)
	assert.Equal(t, 80.0, p.TotalNourishmentRaw)
	assert.Equal(t, 100.0, p.TotalNourishmentPercent)
	assert.Equal(t, 11, p.FlowerGrowthStage)
	assert.Equal(t, 2, p.MealCount)
	assert.True(t, p.BalanceAchieved)
}

func TestCalculateDailyProgress_BalanceNeedsTwoMealTypes(t *testing.T) {
	meals := []models.MealRecord{
		meal(models.MealLunch, "eggs and avocado"),
		meal(models.MealLunch, "chicken salad with rice"),
	}
	assert.False(t, CalculateDailyProgress(meals).BalanceAchieved)
}

func TestCalculateDailyProgress_BalanceThreshold(t *testing.T) {
	at := func(q float64, mt models.MealType) models.MealRecord {
		m := meal(mt, "")
		m.QualityScore = quality(q)
		return m
	}

	// 28 + 28 = 56, exactly 70% of the target
	p := CalculateDailyProgress([]models.MealRecord{at(7, models.MealLunch), at(7, models.MealDinner)})
	assert.Equal(t, 56.0, p.TotalNourishmentRaw)
	assert.True(t, p.BalanceAchieved)
	assert.InDelta(t, 70.0, p.TotalNourishmentPercent, 1e-9)
	assert.Equal(t, 7, p.FlowerGrowthStage)

	p = CalculateDailyProgress([]models.MealRecord{at(7, models.MealLunch), at(6, models.MealDinner)})
	assert.False(t, p.BalanceAchieved)
}

func TestCalculateDailyProgress_MixesAnalysisAndKeywords(t *testing.T) {
	analyzed := meal(models.MealDinner, "pasta")
	analyzed.QualityScore = quality(5)

	p := CalculateDailyProgress([]models.MealRecord{analyzed, meal(models.MealSnack, "apple")})
	assert.Equal(t, 28.0, p.TotalNourishmentRaw)
	assert.InDelta(t, 35.0, p.TotalNourishmentPercent, 1e-9)
	assert.Equal(t, 4, p.FlowerGrowthStage)
	assert.Equal(t, DailyFeedback(35, 2), p.Feedback)
}

func TestDailyFeedback_Bands(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []struct {
		progress float64
		meals    int
	}{{95, 3}, {80, 3}, {65, 2}, {45, 2}, {30, 1}, {10, 1}, {0, 0}} {
		seen[DailyFeedback(c.progress, c.meals)] = true
	}
	assert.Len(t, seen, 7)
}

func TestNewEngine_UsesScore(t *testing.T) {
	engine := NewEngine(flower.NewSelector(flower.SelectDaily, nil))
	date := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	df := engine.DailyFlower([]models.MealRecord{
		meal(models.MealBreakfast, "eggs and avocado"),
		meal(models.MealDinner, "beef stir fry with rice"),
	}, date)

	assert.Equal(t, 11, df.CurrentStage)
	assert.Equal(t, 100.0, df.TotalNourishmentPercent)
	assert.Equal(t, "rose", df.Type.ID)
	assert.Equal(t, "2024-01-15", df.Date)
}
