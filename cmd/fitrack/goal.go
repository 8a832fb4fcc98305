package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "View and set daily goals",
}

var goalGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			g, err := client.Goals(cmd.Context())
			if err != nil {
				return err
			}
			macros := service.DeriveMacroGoals(g.Calories, service.MacroSplit{
				CarbsPct:   g.CarbsPct,
				ProteinPct: g.ProteinPct,
				FatPct:     g.FatPct,
			}, g.WeightKg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calories: %.0f kcal/day\n", g.Calories)
			fmt.Fprintf(out, "Macros: %.0f%% carbs / %.0f%% protein / %.0f%% fat\n", g.CarbsPct, g.ProteinPct, g.FatPct)
			fmt.Fprintf(out, "Gram targets: P%dg C%dg F%dg\n", macros.ProteinG, macros.CarbsG, macros.FatG)
			fmt.Fprintf(out, "Target weight: %.1f kg\n", g.WeightKg)
			fmt.Fprintf(out, "Water: %.0f cups/day\n", g.WaterCups)
			fmt.Fprintf(out, "Workouts: %.0f days/week\n", g.WorkoutDays)
			return nil
		})
	},
}

var goalSet model.Goals

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the current goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			if err := client.SaveGoals(cmd.Context(), goalSet); err != nil {
				// Validation failures never reached the network; render inline.
				fmt.Fprintf(cmd.ErrOrStderr(), "Save failed: %v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goals saved")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalGetCmd, goalSetCmd)

	defaults := model.DefaultGoals()
	goalSetCmd.Flags().Float64Var(&goalSet.Calories, "kcal", defaults.Calories, "Calorie target")
	goalSetCmd.Flags().Float64Var(&goalSet.CarbsPct, "carbs-pct", defaults.CarbsPct, "Carb percentage")
	goalSetCmd.Flags().Float64Var(&goalSet.ProteinPct, "protein-pct", defaults.ProteinPct, "Protein percentage")
	goalSetCmd.Flags().Float64Var(&goalSet.FatPct, "fat-pct", defaults.FatPct, "Fat percentage")
	goalSetCmd.Flags().Float64Var(&goalSet.WeightKg, "weight", defaults.WeightKg, "Target weight kg")
	goalSetCmd.Flags().Float64Var(&goalSet.WaterCups, "water-cups", defaults.WaterCups, "Water cups per day")
	goalSetCmd.Flags().Float64Var(&goalSet.WorkoutDays, "workout-days", defaults.WorkoutDays, "Workout days per week")
}
