package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

const placeholder = "—"

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			ctx := cmd.Context()
			now := time.Now()
			out := cmd.OutOrStdout()

			// Required data: failures here propagate to the user.
			meals, err := client.MealsToday(ctx)
			if err != nil {
				return err
			}
			totals := service.DailyTotals(meals)

			goals, err := client.Goals(ctx)
			if err != nil {
				return err
			}
			macroGoals := service.DeriveMacroGoals(goals.Calories, service.MacroSplit{
				CarbsPct:   goals.CarbsPct,
				ProteinPct: goals.ProteinPct,
				FatPct:     goals.FatPct,
			}, goals.WeightKg)

			weightKg := goals.WeightKg
			if w, err := client.LatestWeight(ctx); err == nil && w != nil {
				weightKg = w.WeightKg
			}

			fmt.Fprintf(out, "Food: %.0f / %.0f kcal\n", totals.Calories, goals.Calories)
			fmt.Fprintf(out, "  Protein %.0f/%d g   Carbs %.0f/%d g   Fat %.0f/%d g\n",
				totals.ProteinG, macroGoals.ProteinG,
				totals.CarbsG, macroGoals.CarbsG,
				totals.FatG, macroGoals.FatG)

			// Optional widgets: absent data degrades to a placeholder.
			workouts, err := client.Workouts(ctx, 120)
			if err == nil {
				day := service.DayExerciseTotals(workouts, weightKg, now, now)
				weekly := service.WeeklySummary(workouts, weightKg, now)
				streak := service.WorkoutStreak(workouts, now)
				net := totals.Calories - float64(day.Calories)
				fmt.Fprintf(out, "Exercise: %d kcal, %d active min (net %.0f kcal)\n", day.Calories, day.ActiveMin, net)
				fmt.Fprintf(out, "This week: %d workouts, %d kcal, %d min, streak %d days\n",
					weekly.Workouts, weekly.Calories, weekly.ActiveMin, streak)
			} else {
				fmt.Fprintf(out, "Exercise: %s\n", placeholder)
			}

			printLastWorkout(ctx, out, client, now)

			if st, err := client.StepsToday(ctx); err == nil && st != nil {
				fmt.Fprintf(out, "Steps: %.0f\n", st.Count())
			} else {
				fmt.Fprintf(out, "Steps: %s\n", placeholder)
			}

			waterGoalMl := goals.WaterCups * 250
			if wt, err := client.WaterToday(ctx); err == nil && wt != nil {
				fmt.Fprintf(out, "Water: %.0f / %.0f ml\n", wt.Volume(), waterGoalMl)
			} else {
				fmt.Fprintf(out, "Water: %s / %.0f ml\n", placeholder, waterGoalMl)
			}
			return nil
		})
	},
}

func printLastWorkout(ctx context.Context, out io.Writer, client *api.Client, now time.Time) {
	lw, err := client.LastWorkout(ctx)
	if err != nil || lw == nil {
		fmt.Fprintf(out, "Last workout: %s\n", placeholder)
		return
	}
	name := lw.Name
	if name == "" {
		name = "Workout"
	}
	mins := service.Minutes(*lw, now)
	kcal := service.EstimateCalories(*lw, 0, now)
	fmt.Fprintf(out, "Last workout: %s, %d min, %d kcal\n", name, mins, kcal)
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
