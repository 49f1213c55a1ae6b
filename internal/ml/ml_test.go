package ml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franckalain/nourishbloom/internal/models"
	"github.com/franckalain/nourishbloom/internal/nourish"
)

func TestParseAnalysis(t *testing.T) {
	text := "```json\n" + `{
		"overall_score": 8,
		"overall_assessment": "Balanced and warming",
		"key_nutrients": [{"name": "Protein", "amount": "25g", "daily_value_percentage": 50, "health_impact": "positive"}],
		"positive_aspects": [{"aspect": "Healthy fats", "impact": "positive", "explanation": "avocado", "severity": "moderate"}],
		"encouragement": "Lovely choice",
		"processing_level": "minimal",
		"estimated_calories": 540
	}` + "\n```"

	a, err := parseAnalysis(text, "meal-1")
	require.NoError(t, err)
	assert.Equal(t, "meal-1", a.MealID)
	assert.Equal(t, 8, a.OverallScore)
	assert.Equal(t, "minimal", a.ProcessingLevel)
	require.Len(t, a.KeyNutrients, 1)
	require.NotNil(t, a.KeyNutrients[0].DailyValuePercentage)
	assert.Equal(t, 50.0, *a.KeyNutrients[0].DailyValuePercentage)
	require.NotNil(t, a.EstimatedCalories)
	assert.Equal(t, 540, *a.EstimatedCalories)
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "jpeg", imageFormat([]byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F'}))
	assert.Equal(t, "png", imageFormat([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
	assert.Equal(t, "webp", imageFormat([]byte("RIFF\x00\x00\x00\x00WEBPVP")))
	assert.Equal(t, "jpeg", imageFormat([]byte("not an image")))
}

func TestParseAnalysis_Errors(t *testing.T) {
	_, err := parseAnalysis("not json", "m")
	assert.Error(t, err)

	_, err = parseAnalysis(`{"overall_assessment": "fine"}`, "m")
	assert.ErrorContains(t, err, "overall_score")

	_, err = parseAnalysis(`{"overall_score": 0}`, "m")
	assert.ErrorContains(t, err, "outside 1-10")

	_, err = parseAnalysis(`{"overall_score": 11}`, "m")
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence(" ```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestLocalAnalyzer(t *testing.T) {
	analyzer, err := NewAnalyzer("local", "")
	require.NoError(t, err)

	req := MealAnalysisRequest{MealID: "m1", MealType: models.MealBreakfast, Description: "eggs and avocado"}
	_, err = analyzer.AnalyzeMeal(context.Background(), req)
	assert.True(t, errors.Is(err, ErrAnalyzerNotLoaded))

	require.NoError(t, analyzer.Load(context.Background()))

	a, err := analyzer.AnalyzeMeal(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "m1", a.MealID)
	assert.Equal(t, 10, a.OverallScore)
	assert.Equal(t, nourish.MealMessage(models.MealBreakfast, models.BalanceAbundant), a.Encouragement)

	a, err = analyzer.AnalyzeMeal(context.Background(), MealAnalysisRequest{MealType: models.MealSnack, Description: "water"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.OverallScore)

	// 22.8 points rounds to a 6
	a, err = analyzer.AnalyzeMeal(context.Background(), MealAnalysisRequest{MealType: models.MealLunch, Description: "apple, spinach and tomato"})
	require.NoError(t, err)
	assert.Equal(t, 6, a.OverallScore)
}

func TestLocalAnalyzer_Cancelled(t *testing.T) {
	analyzer, err := NewAnalyzer("local", "")
	require.NoError(t, err)
	require.NoError(t, analyzer.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.AnalyzeMeal(ctx, MealAnalysisRequest{MealType: models.MealLunch})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"min_score": 3}`), 0o644))

	cfg := LocalConfig{BaseConfig: BaseConfig{ConfigPath: path}}
	require.NoError(t, cfg.Load())
	assert.Equal(t, 3, cfg.MinScore)

	missing := LocalConfig{BaseConfig: BaseConfig{ConfigPath: filepath.Join(t.TempDir(), "nope.json")}}
	assert.Error(t, missing.Load())
}

func TestNewAnalyzer_Unsupported(t *testing.T) {
	_, err := NewAnalyzer("quantum", "")
	assert.ErrorContains(t, err, "unsupported analyzer type")
}

func TestGoogleAnalyzer_NotLoaded(t *testing.T) {
	a := &GoogleAnalyzer{}
	_, err := a.AnalyzeMeal(context.Background(), MealAnalysisRequest{})
	assert.ErrorIs(t, err, ErrAnalyzerNotLoaded)
	assert.NoError(t, a.Close())
}
