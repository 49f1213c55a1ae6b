package flower

import "github.com/franckalain/nourishbloom/internal/models"

// Types are the flower variants a day can be assigned.
var Types = []models.FlowerType{
	{ID: "rose", Name: "Rose", Emoji: "🌹",
		Colors:      models.FlowerPalette{Primary: "#FF6B9D", Secondary: "#FFB4D1", Accent: "#FF8FA3"},
		Personality: "elegant and nurturing"},
	{ID: "sunflower", Name: "Sunflower", Emoji: "🌻",
		Colors:      models.FlowerPalette{Primary: "#FFD700", Secondary: "#FFF8DC", Accent: "#FFE55C"},
		Personality: "bright and energizing"},
	{ID: "cherry_blossom", Name: "Cherry Blossom", Emoji: "🌸",
		Colors:      models.FlowerPalette{Primary: "#FFB7C5", Secondary: "#FFF0F5", Accent: "#FFC0CB"},
		Personality: "gentle and hopeful"},
	{ID: "lavender", Name: "Lavender", Emoji: "💜",
		Colors:      models.FlowerPalette{Primary: "#E6E6FA", Secondary: "#F8F8FF", Accent: "#DDA0DD"},
		Personality: "calming and restorative"},
	{ID: "tulip", Name: "Tulip", Emoji: "🌷",
		Colors:      models.FlowerPalette{Primary: "#FF69B4", Secondary: "#FFE4E1", Accent: "#FF1493"},
		Personality: "vibrant and joyful"},
	{ID: "daisy", Name: "Daisy", Emoji: "🌼",
		Colors:      models.FlowerPalette{Primary: "#FFFF00", Secondary: "#FFFACD", Accent: "#F0E68C"},
		Personality: "cheerful and optimistic"},
	{ID: "lotus", Name: "Lotus", Emoji: "🪷",
		Colors:      models.FlowerPalette{Primary: "#FFB6C1", Secondary: "#FFF5EE", Accent: "#F0E68C"},
		Personality: "peaceful and transformative"},
	{ID: "hibiscus", Name: "Hibiscus", Emoji: "🌺",
		Colors:      models.FlowerPalette{Primary: "#FF4500", Secondary: "#FFE4E1", Accent: "#FF6347"},
		Personality: "bold and confident"},
	{ID: "orchid", Name: "Orchid", Emoji: "🌺",
		Colors:      models.FlowerPalette{Primary: "#DA70D6", Secondary: "#F8F8FF", Accent: "#DDA0DD"},
		Personality: "graceful and resilient"},
	{ID: "peony", Name: "Peony", Emoji: "🌸",
		Colors:      models.FlowerPalette{Primary: "#FFB6C1", Secondary: "#FFF0F5", Accent: "#FF69B4"},
		Personality: "abundant and flourishing"},
	{ID: "jasmine", Name: "Jasmine", Emoji: "🤍",
		Colors:      models.FlowerPalette{Primary: "#F8F8FF", Secondary: "#FFFAF0", Accent: "#E6E6FA"},
		Personality: "pure and fragrant"},
}

// TypeByID looks up a flower variant.
func TypeByID(id string) (models.FlowerType, bool) {
	for _, t := range Types {
		if t.ID == id {
			return t, true
		}
	}
	return models.FlowerType{}, false
}
