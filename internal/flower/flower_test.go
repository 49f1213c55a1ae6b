package flower

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franckalain/nourishbloom/internal/models"
)

func TestStage_Boundaries(t *testing.T) {
	tests := []struct {
		progress float64
		want     int
	}{
		{0, 0}, {7.99, 0}, {8, 1}, {14.9, 1}, {15, 2}, {25, 3}, {35, 4}, {45, 5},
		{55, 6}, {65, 7}, {75, 8}, {85, 9}, {89.9, 9}, {90, 10}, {94.9, 10}, {95, 11}, {100, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stage(tt.progress), "progress %.2f", tt.progress)
	}
}

func TestStage_Monotonic(t *testing.T) {
	prev := 0
	for p := 0.0; p <= 100; p += 0.25 {
		s := Stage(p)
		require.GreaterOrEqual(t, s, prev, "progress %.2f", p)
		require.LessOrEqual(t, s, MaxStage)
		prev = s
	}
}

func TestStageProgress_WithinBand(t *testing.T) {
	assert.Equal(t, 0.0, StageProgress(0, 0))
	assert.Equal(t, 50.0, StageProgress(50, 5))
	assert.Equal(t, 50.0, StageProgress(97.5, 11))
	assert.Equal(t, 100.0, StageProgress(100, 11))
	assert.Equal(t, 0.0, StageProgress(10, 5))
	assert.Equal(t, 100.0, StageProgress(60, 5))
	// unknown stage falls back to the whole range
	assert.Equal(t, 42.0, StageProgress(42, 12))
	assert.Equal(t, 42.0, StageProgress(42, -1))
}

func TestStageProgress_RoundTrip(t *testing.T) {
	for p := 0.0; p <= 100; p += 0.1 {
		sp := StageProgress(p, Stage(p))
		require.GreaterOrEqual(t, sp, 0.0, "progress %.2f", p)
		require.LessOrEqual(t, sp, 100.0, "progress %.2f", p)
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, ProgressPercent(0))
	assert.Equal(t, 0.0, ProgressPercent(-5))
	assert.Equal(t, 50.0, ProgressPercent(40))
	assert.Equal(t, 100.0, ProgressPercent(80))
	assert.Equal(t, 100.0, ProgressPercent(160))
}

func TestHashString(t *testing.T) {
	assert.Equal(t, uint32(0), HashString(""))
	assert.Equal(t, uint32(97), HashString("a"))
	assert.Equal(t, uint32(99162322), HashString("hello"))
	assert.Equal(t, uint32(613341597), HashString("2024-01-15"))
	assert.Equal(t, uint32(1833720275), HashString("2024-01-150"))
}

func TestSelector_Daily(t *testing.T) {
	s := NewSelector(SelectDaily, func(int) int { t.Fatal("daily selection must not draw"); return 0 })
	day := time.Date(2024, 1, 15, 7, 30, 0, 0, time.UTC)

	assert.Equal(t, "rose", s.Today(day).ID)
	assert.Equal(t, s.Today(day), s.Today(day.Add(10*time.Hour)))
	assert.Equal(t, "peony", s.Today(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)).ID)
}

func TestSelector_Random(t *testing.T) {
	draws := []int{0, 999}
	s := NewSelector(SelectRandom, func(n int) int {
		assert.Equal(t, 1000, n)
		d := draws[0]
		draws = draws[1:]
		return d
	})
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "cherry_blossom", s.Today(day).ID)
	assert.Equal(t, "lotus", s.Today(day).ID)
}

func TestParseSelectionMode(t *testing.T) {
	mode, err := ParseSelectionMode("")
	require.NoError(t, err)
	assert.Equal(t, SelectDaily, mode)

	mode, err = ParseSelectionMode("random")
	require.NoError(t, err)
	assert.Equal(t, SelectRandom, mode)

	_, err = ParseSelectionMode("weekly")
	assert.Error(t, err)
}

func TestEngine_EmptyDay(t *testing.T) {
	e := NewEngine(func(models.MealRecord) float64 { return 40 }, NewSelector(SelectDaily, nil))
	df := e.DailyFlower(nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	want := models.DailyFlower{
		Type:                    Types[0],
		CurrentStage:            0,
		StageProgress:           0,
		Date:                    "2024-01-15",
		TotalNourishmentPercent: 0,
	}
	if diff := cmp.Diff(want, df); diff != "" {
		t.Errorf("DailyFlower mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_TwoFullMeals(t *testing.T) {
	e := NewEngine(func(models.MealRecord) float64 { return 40 }, NewSelector(SelectDaily, nil))
	df := e.DailyFlower(make([]models.MealRecord, 2), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 11, df.CurrentStage)
	assert.Equal(t, 100.0, df.StageProgress)
	assert.Equal(t, 100.0, df.TotalNourishmentPercent)
}

func TestGrow_MidStage(t *testing.T) {
	df := Grow(50, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Types[1])
	assert.Equal(t, 5, df.CurrentStage)
	assert.Equal(t, 50.0, df.StageProgress)
	assert.Equal(t, "sunflower", df.Type.ID)
}

func TestCheckMilestone(t *testing.T) {
	assert.True(t, CheckMilestone(3, 4))
	assert.False(t, CheckMilestone(4, 4))
	assert.False(t, CheckMilestone(5, 4))
}

func TestMessages(t *testing.T) {
	df := Grow(0, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Types[0])
	assert.Equal(t,
		"Your elegant and nurturing rose is your journey begins with intention. Every beautiful flower starts with a single seed of intention 🌰✨",
		Message(df))

	assert.Equal(t,
		"🎉 Your Sunflower has reached First Bloom! Your first bloom is here! What a beautiful milestone 🌸🎉",
		MilestoneMessage(7, Types[1]))
}

func TestTables(t *testing.T) {
	assert.Len(t, Types, 11)
	for i, s := range Stages {
		assert.Equal(t, i, s.Stage)
	}
	ft, ok := TypeByID("jasmine")
	assert.True(t, ok)
	assert.Equal(t, "Jasmine", ft.Name)
	_, ok = TypeByID("cactus")
	assert.False(t, ok)
}
