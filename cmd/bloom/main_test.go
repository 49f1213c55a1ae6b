package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franckalain/nourishbloom/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	out, err := execute(t, "estimate", "--meal", "breakfast", "eggs and avocado")
	require.NoError(t, err)
	assert.Contains(t, out, "Nourishment: 40.0 / 40")
	assert.Contains(t, out, "Balance:     abundant")

	out, err = execute(t, "estimate", "--json", "-m", "lunch", "-q", "8", "anything")
	require.NoError(t, err)
	var est models.NourishmentEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 32.0, est.NourishmentScore)
	assert.Equal(t, models.BalanceSubstantial, est.Balance)

	_, err = execute(t, "estimate", "--meal", "brunch", "toast")
	assert.Error(t, err)
}

func TestStageCommand(t *testing.T) {
	out, err := execute(t, "stage", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Stage 5:")
	assert.Contains(t, out, "Bud Formation (50% through)")

	_, err = execute(t, "stage", "lots")
	assert.Error(t, err)
}

func TestFlowerCommand(t *testing.T) {
	out, err := execute(t, "flower", "--json", "--date", "2024-01-15", "--meal", "breakfast:eggs and avocado")
	require.NoError(t, err)

	var df models.DailyFlower
	require.NoError(t, json.Unmarshal([]byte(out), &df))
	assert.Equal(t, "rose", df.Type.ID)
	assert.Equal(t, "2024-01-15", df.Date)
	assert.Equal(t, 50.0, df.TotalNourishmentPercent)
	assert.Equal(t, 5, df.CurrentStage)

	_, err = execute(t, "flower", "--meal", "eggs")
	assert.Error(t, err)
	_, err = execute(t, "flower", "--date", "15/01/2024")
	assert.Error(t, err)
	_, err = execute(t, "flower", "--mode", "weekly")
	assert.Error(t, err)
}

func TestParseMeals(t *testing.T) {
	meals, err := parseMeals([]string{"lunch: salmon bowl", "snack:apple"})
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, models.MealLunch, meals[0].MealType)
	assert.Equal(t, "salmon bowl", meals[0].Description)
}
