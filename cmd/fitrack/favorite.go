package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage saved workout templates",
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			favorites, err := client.FavoriteWorkouts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(favorites) == 0 {
				fmt.Fprintln(out, "No favorites")
				return nil
			}
			for _, f := range favorites {
				fmt.Fprintf(out, "%s (%d exercises)\n", f.Name, len(f.Plan))
				for _, p := range f.Plan {
					fmt.Fprintf(out, "  %s %dx%d @ %.1f kg\n", p.Exercise, p.TargetSets, p.Reps, p.WeightKg)
				}
			}
			return nil
		})
	},
}

var favoritePlan []string

var favoriteSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a workout template",
	Long:  "Save a workout template. Each --plan entry is exercise:sets:reps[:kg], e.g. --plan squat:3:5:100.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := parsePlan(favoritePlan)
		if err != nil {
			return err
		}
		return withAPI(func(client *api.Client) error {
			if err := client.SaveFavoriteWorkout(cmd.Context(), args[0], plan); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Save failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
			return nil
		})
	},
}

func parsePlan(entries []string) ([]model.PlanEntry, error) {
	plan := make([]model.PlanEntry, 0, len(entries))
	for _, e := range entries {
		parts := strings.Split(e, ":")
		if len(parts) < 3 {
			return nil, fmt.Errorf("plan entry %q: want exercise:sets:reps[:kg]", e)
		}
		sets, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("plan entry %q: parse sets: %w", e, err)
		}
		reps, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("plan entry %q: parse reps: %w", e, err)
		}
		entry := model.PlanEntry{Exercise: parts[0], TargetSets: sets, Reps: reps}
		if len(parts) > 3 {
			kg, err := strconv.ParseFloat(parts[3], 64)
			if err != nil {
				return nil, fmt.Errorf("plan entry %q: parse kg: %w", e, err)
			}
			entry.WeightKg = kg
		}
		plan = append(plan, entry)
	}
	return plan, nil
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteListCmd, favoriteSaveCmd)

	favoriteSaveCmd.Flags().StringArrayVar(&favoritePlan, "plan", nil, "Plan entry exercise:sets:reps[:kg] (repeatable)")
}
