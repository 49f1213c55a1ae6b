package nourish

// keyword is a food word and the nourishment points it contributes when it
// appears anywhere in a meal description.
type keyword struct {
	food  string
	value float64
}

// Matching is substring based, so "nut butter" also matches "butter" and
// "nuts" can match inside longer words. Scores were tuned with that overlap.
var nourishmentValues = []keyword{
	// Protein sources
	{"eggs", 25}, {"salmon", 30}, {"chicken", 28}, {"beef", 32}, {"tofu", 22},
	{"yogurt", 18}, {"cheese", 24}, {"nuts", 26}, {"beans", 20},

	// Fats
	{"avocado", 22}, {"olive oil", 35}, {"butter", 30}, {"coconut", 28},
	{"seeds", 24}, {"nut butter", 28},

	// Complex carbohydrates
	{"quinoa", 20}, {"rice", 18}, {"oats", 19}, {"pasta", 21}, {"bread", 16},
	{"sweet potato", 17}, {"potato", 15},

	// Fruit and vegetables
	{"banana", 12}, {"apple", 8}, {"berries", 10}, {"spinach", 6},
	{"broccoli", 7}, {"carrots", 6}, {"tomato", 5},

	// Composite meals
	{"bowl", 35}, {"smoothie", 25}, {"soup", 22}, {"salad", 18},
	{"sandwich", 24}, {"stir fry", 28}, {"pasta dish", 26},
}

// Word lists used by RecoveryScore.
var (
	calorieDenseWords = []string{"nuts", "avocado", "oil", "butter", "cheese", "eggs", "salmon", "beef", "quinoa", "oats"}
	proteinWords      = []string{"eggs", "chicken", "fish", "beef", "tofu", "beans", "yogurt", "cheese"}
	healthyFatWords   = []string{"avocado", "nuts", "olive oil", "salmon", "seeds"}
)
