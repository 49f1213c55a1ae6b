package models

import "time"

// FlowerPalette holds the three colours a flower is drawn with
type FlowerPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// FlowerType is one of the fixed decorative flower variants
type FlowerType struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Emoji       string        `json:"emoji"`
	Colors      FlowerPalette `json:"colors"`
	Personality string        `json:"personality"`
}

// FlowerStage describes one of the twelve growth stages
type FlowerStage struct {
	Stage       int    `json:"stage"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Message     string `json:"message"`
}

// DailyFlower is the day's growth state, recomputed from the day's meals
type DailyFlower struct {
	Type                    FlowerType `json:"type"`
	CurrentStage            int        `json:"current_stage"`  // 0-11
	StageProgress           float64    `json:"stage_progress"` // 0-100 within the current stage
	Date                    string     `json:"date"`
	TotalNourishmentPercent float64    `json:"total_nourishment_percent"`
}

// FlowerDay is the stored flower state of one calendar day
type FlowerDay struct {
	Day       string    `json:"day"`
	FlowerID  string    `json:"flower_id"`
	LastStage int       `json:"last_stage"`
	UpdatedAt time.Time `json:"updated_at"`
}
