package nourish

import (
	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/models"
)

// balanceShare is the fraction of the daily target needed for a balanced day.
const balanceShare = 0.7

// CalculateDailyProgress aggregates one day's meals.
func CalculateDailyProgress(meals []models.MealRecord) models.DailyProgress {
	var total float64
	mealTypes := make(map[models.MealType]struct{})
	for _, meal := range meals {
		total += Score(meal)
		mealTypes[meal.MealType] = struct{}{}
	}

	progress := flower.ProgressPercent(total)
	return models.DailyProgress{
		TotalNourishmentPercent: progress,
		TotalNourishmentRaw:     total,
		MealCount:               len(meals),
		BalanceAchieved:         len(mealTypes) >= 2 && total >= balanceShare*flower.DailyTarget,
		FlowerGrowthStage:       flower.Stage(progress),
		Feedback:                DailyFeedback(progress, len(meals)),
	}
}

// NewEngine returns a flower engine scoring meals with Score.
func NewEngine(selector *flower.Selector) *flower.Engine {
	return flower.NewEngine(Score, selector)
}
