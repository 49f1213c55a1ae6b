// Package flower maps daily nourishment progress onto the growth of a
// flower: twelve stages, a sub-stage progress value for animation, and a
// flower variant chosen per day.
package flower

import "github.com/franckalain/nourishbloom/internal/models"

const (
	// DailyTarget is the nourishment total that counts as a full day.
	DailyTarget = 80

	// MaxStage is the last growth stage.
	MaxStage = 11
)

// stageFloors holds the lowest progress percentage of each stage. Stage i
// covers [stageFloors[i], stageFloors[i+1]); the last stage runs to 100.
var stageFloors = [MaxStage + 1]float64{0, 8, 15, 25, 35, 45, 55, 65, 75, 85, 90, 95}

// Stages describes each growth stage from seed to full bloom.
var Stages = [MaxStage + 1]models.FlowerStage{
	{Stage: 0, Name: "Planted Seed", Description: "Your journey begins with intention", Emoji: "🌰",
		Message: "Every beautiful flower starts with a single seed of intention 🌰✨"},
	{Stage: 1, Name: "First Sprout", Description: "Tiny green shoots emerge", Emoji: "🌱",
		Message: "Look! Your first signs of growth are appearing 🌱💚"},
	{Stage: 2, Name: "Young Leaves", Description: "Small leaves unfurl toward the light", Emoji: "🌿",
		Message: "Your little leaves are reaching for nourishment 🌿☀️"},
	{Stage: 3, Name: "Growing Stem", Description: "Strong stem develops with more leaves", Emoji: "🌾",
		Message: "Your stem is growing stronger with each nourishing choice 🌾💪"},
	{Stage: 4, Name: "Leafy Growth", Description: "Lush foliage shows healthy development", Emoji: "🍃",
		Message: "Beautiful leaves show how well you're caring for yourself 🍃✨"},
	{Stage: 5, Name: "Bud Formation", Description: "First tiny buds appear", Emoji: "🌿",
		Message: "Exciting! Your first buds are forming - bloom is coming 🌿🌸"},
	{Stage: 6, Name: "Swelling Buds", Description: "Buds grow larger, ready to open", Emoji: "🌹",
		Message: "Your buds are swelling with potential - so close to blooming! 🌹💫"},
	{Stage: 7, Name: "First Bloom", Description: "First delicate petals unfurl", Emoji: "🌸",
		Message: "Your first bloom is here! What a beautiful milestone 🌸🎉"},
	{Stage: 8, Name: "Partial Bloom", Description: "More flowers open in lovely display", Emoji: "🌼",
		Message: "More blooms are opening - you're flourishing beautifully 🌼✨"},
	{Stage: 9, Name: "Full Bloom", Description: "Magnificent full flowering display", Emoji: "🌻",
		Message: "Full bloom achieved! Your dedication is absolutely radiant 🌻🌟"},
	{Stage: 10, Name: "Peak Bloom", Description: "Abundant, vibrant flowering", Emoji: "🌺",
		Message: "Peak bloom! You're absolutely glowing with health and vitality 🌺✨"},
	{Stage: 11, Name: "Radiant Garden", Description: "A masterpiece of nourishment and care", Emoji: "🏵️",
		Message: "Radiant perfection! You've created something truly magnificent 🏵️👑"},
}

// ProgressPercent converts a raw nourishment total into a percentage of the
// daily target, capped at 100.
func ProgressPercent(totalRaw float64) float64 {
	if totalRaw <= 0 {
		return 0
	}
	return min(totalRaw/DailyTarget*100, 100)
}

// Stage returns the growth stage for a progress percentage.
func Stage(progress float64) int {
	for stage := MaxStage; stage > 0; stage-- {
		if progress >= stageFloors[stage] {
			return stage
		}
	}
	return 0
}

// StageProgress returns how far progress has moved through the band of the
// given stage, in [0, 100]. Stages outside 0..MaxStage use the band [0, 100].
func StageProgress(progress float64, stage int) float64 {
	lo, hi := 0.0, 100.0
	if stage >= 0 && stage <= MaxStage {
		lo = stageFloors[stage]
		if stage < MaxStage {
			hi = stageFloors[stage+1]
		}
	}
	inStage := max(0, progress-lo)
	return min(100, inStage/(hi-lo)*100)
}

// StageInfo returns the description of a stage, clamping out-of-range values.
func StageInfo(stage int) models.FlowerStage {
	stage = min(max(stage, 0), MaxStage)
	return Stages[stage]
}
