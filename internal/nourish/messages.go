package nourish

import "github.com/franckalain/nourishbloom/internal/models"

// GenericMessage is shown when no message exists for a meal type and balance.
const GenericMessage = "Every nourishing choice is a step toward healing and strength! 🌸"

var mealMessages = map[models.MealType]map[models.BalanceIndicator]string{
	models.MealBreakfast: {
		models.BalanceLight:       "A gentle start to your day! Every nourishing choice matters 🌅",
		models.BalanceModerate:    "What a lovely way to fuel your morning! Your body will thank you 🌸",
		models.BalanceSubstantial: "Beautiful breakfast choice! You're giving your body wonderful energy ✨",
		models.BalanceAbundant:    "What an amazing way to start your day! Your body is getting incredible nourishment 🌺",
	},
	models.MealLunch: {
		models.BalanceLight:       "A mindful midday choice! You're listening to your body's needs 🌿",
		models.BalanceModerate:    "Perfect lunch timing! Your body is getting steady, supportive energy 🌻",
		models.BalanceSubstantial: "Wonderful lunch! You're maintaining beautiful energy throughout your day 🌼",
		models.BalanceAbundant:    "Incredible lunch choice! Your body is thriving with this nourishment 🌹",
	},
	models.MealDinner: {
		models.BalanceLight:       "A peaceful evening meal! Rest and recovery are just as important 🌙",
		models.BalanceModerate:    "Lovely dinner choice! Your body can restore and heal beautifully tonight 💫",
		models.BalanceSubstantial: "Perfect evening nourishment! Your body will repair and strengthen overnight 🌸",
		models.BalanceAbundant:    "Amazing dinner! Your body has everything it needs for beautiful recovery 🌺",
	},
	models.MealSnack: {
		models.BalanceLight:       "Sweet little boost! These moments of nourishment add up beautifully 🍃",
		models.BalanceModerate:    "Perfect snack timing! You're keeping your energy steady and strong 🌱",
		models.BalanceSubstantial: "Wonderful snack choice! Your body loves this consistent care 🌻",
		models.BalanceAbundant:    "Amazing snack! You're giving your body such thoughtful, loving fuel ✨",
	},
}

// MealMessage returns the encouragement for a meal type and balance, falling
// back to GenericMessage for unknown combinations.
func MealMessage(mealType models.MealType, balance models.BalanceIndicator) string {
	if msg, ok := mealMessages[mealType][balance]; ok {
		return msg
	}
	return GenericMessage
}

// DailyFeedback picks the day's encouragement from the progress band.
func DailyFeedback(progress float64, mealCount int) string {
	switch {
	case progress >= 90:
		return "Your flower is in magnificent full bloom! What an incredible day of nourishment 🌺✨"
	case progress >= 75:
		return "Your flower is blooming beautifully! You're giving your body amazing care today 🌸🌿"
	case progress >= 60:
		return "Look how your flower is growing! Every meal is helping it reach toward the sun 🌻🌱"
	case progress >= 40:
		return "Your flower is developing lovely buds! Each nourishing choice helps it grow stronger 🌿💚"
	case progress >= 25:
		return "Your flower is sprouting beautifully! Small, consistent steps create amazing growth 🌱✨"
	case mealCount > 0:
		return "Your flower has planted its roots! Every meal is a gift of love to your body 🌰💚"
	default:
		return "Your flower is ready to begin growing! Each nourishing choice will help it bloom 🌱🌸"
	}
}
