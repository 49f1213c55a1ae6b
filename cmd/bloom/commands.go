package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/models"
	"github.com/franckalain/nourishbloom/internal/nourish"
)

// =============================================================================
// ESTIMATE
// =============================================================================

func newEstimateCmd() *cobra.Command {
	var (
		mealType string
		quality  float64
	)
	cmd := &cobra.Command{
		Use:   "estimate [description]",
		Short: "Estimate the nourishment of one meal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt := models.MealType(mealType)
			if !mt.Valid() {
				return fmt.Errorf("unknown meal type %q", mealType)
			}
			meal := models.MealRecord{MealType: mt}
			if len(args) == 1 {
				meal.Description = args[0]
			}
			if cmd.Flags().Changed("quality") {
				meal.QualityScore = &quality
			}

			est := nourish.Estimate(meal)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), est)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Nourishment: %.1f / %d\n", est.NourishmentScore, nourish.MaxScore)
			fmt.Fprintf(out, "Energy:      %.1f%%\n", est.EnergyLevel)
			fmt.Fprintf(out, "Balance:     %s\n", est.Balance)
			fmt.Fprintln(out, est.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mealType, "meal", "m", string(models.MealLunch), "meal type: breakfast, lunch, dinner or snack")
	cmd.Flags().Float64VarP(&quality, "quality", "q", 0, "quality score 1-10, used instead of keywords")
	return cmd
}

// =============================================================================
// STAGE
// =============================================================================

func newStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage <percent>",
		Short: "Show the growth stage for a daily progress percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid percentage %q: %w", args[0], err)
			}

			stage := flower.Stage(progress)
			info := flower.StageInfo(stage)
			sub := flower.StageProgress(progress, stage)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"stage":          info,
					"stage_progress": sub,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stage %d: %s %s (%.0f%% through)\n", stage, info.Emoji, info.Name, sub)
			fmt.Fprintln(out, info.Message)
			return nil
		},
	}
}

// =============================================================================
// FLOWER
// =============================================================================

func newFlowerCmd() *cobra.Command {
	var (
		date  string
		mode  string
		meals []string
	)
	cmd := &cobra.Command{
		Use:   "flower",
		Short: "Show the flower for a date, grown from the given meals",
		Example: `  bloom flower --date 2024-01-15
  bloom flower --meal "breakfast:eggs and avocado" --meal "lunch:chicken salad"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				var err error
				if day, err = time.ParseInLocation(models.DayLayout, date, time.Local); err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
				}
			}
			selection, err := flower.ParseSelectionMode(mode)
			if err != nil {
				return err
			}
			records, err := parseMeals(meals)
			if err != nil {
				return err
			}

			df := nourish.NewEngine(flower.NewSelector(selection, nil)).DailyFlower(records, day)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), df)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s for %s\n", df.Type.Emoji, df.Type.Name, df.Date)
			fmt.Fprintf(out, "Progress: %.1f%%, stage %d\n", df.TotalNourishmentPercent, df.CurrentStage)
			fmt.Fprintln(out, flower.Message(df))
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&mode, "mode", string(flower.SelectDaily), "flower selection: daily or random")
	cmd.Flags().StringArrayVarP(&meals, "meal", "m", nil, "meal as type:description, repeatable")
	return cmd
}

// parseMeals reads "type:description" pairs
func parseMeals(raw []string) ([]models.MealRecord, error) {
	records := make([]models.MealRecord, 0, len(raw))
	for _, r := range raw {
		mealType, description, ok := strings.Cut(r, ":")
		mt := models.MealType(strings.TrimSpace(mealType))
		if !ok || !mt.Valid() {
			return nil, fmt.Errorf("invalid meal %q, want type:description", r)
		}
		records = append(records, models.MealRecord{MealType: mt, Description: strings.TrimSpace(description)})
	}
	return records, nil
}
