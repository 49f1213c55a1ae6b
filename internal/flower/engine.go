package flower

import (
	"fmt"
	"strings"
	"time"

	"github.com/franckalain/nourishbloom/internal/models"
)

// ScoreFunc returns the nourishment points of one meal.
type ScoreFunc func(meal models.MealRecord) float64

// Engine recomputes a day's flower from that day's meals. It holds no state
// between calls.
type Engine struct {
	score    ScoreFunc
	selector *Selector
}

func NewEngine(score ScoreFunc, selector *Selector) *Engine {
	return &Engine{score: score, selector: selector}
}

// DailyFlower sums the meals' nourishment and grows the day's flower.
func (e *Engine) DailyFlower(meals []models.MealRecord, date time.Time) models.DailyFlower {
	var total float64
	for _, meal := range meals {
		total += e.score(meal)
	}
	return Grow(ProgressPercent(total), date, e.selector.Today(date))
}

// Selector returns the engine's flower selector.
func (e *Engine) Selector() *Selector {
	return e.selector
}

// Grow builds the flower state for a progress percentage with a known variant.
func Grow(progress float64, date time.Time, flowerType models.FlowerType) models.DailyFlower {
	stage := Stage(progress)
	return models.DailyFlower{
		Type:                    flowerType,
		CurrentStage:            stage,
		StageProgress:           StageProgress(progress, stage),
		Date:                    date.Format(models.DayLayout),
		TotalNourishmentPercent: progress,
	}
}

// CheckMilestone reports whether the flower moved up at least one stage.
func CheckMilestone(previousStage, currentStage int) bool {
	return currentStage > previousStage
}

// Message combines the flower's personality with its current stage.
func Message(df models.DailyFlower) string {
	stage := StageInfo(df.CurrentStage)
	return fmt.Sprintf("Your %s %s is %s. %s",
		df.Type.Personality, strings.ToLower(df.Type.Name), strings.ToLower(stage.Description), stage.Message)
}

// MilestoneMessage celebrates reaching a new stage.
func MilestoneMessage(newStage int, flowerType models.FlowerType) string {
	stage := StageInfo(newStage)
	return fmt.Sprintf("🎉 Your %s has reached %s! %s", flowerType.Name, stage.Name, stage.Message)
}
