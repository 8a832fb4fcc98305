package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log and review workouts",
}

var workoutListLimit int

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			workouts, err := client.Workouts(cmd.Context(), workoutListLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(workouts) == 0 {
				fmt.Fprintln(out, "No workouts")
				return nil
			}
			now := time.Now()
			for _, w := range workouts {
				name := w.Name
				if name == "" {
					name = "Workout"
				}
				when := placeholder
				if at, ok := service.EffectiveTime(w); ok {
					when = at.Format("2006-01-02")
				}
				fmt.Fprintf(out, "%s  %s  %d min  %d kcal\n",
					when, name, service.Minutes(w, now), service.EstimateCalories(w, 0, now))
			}
			return nil
		})
	},
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			id, err := client.StartWorkout(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Start failed: %v\n", err)
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Workout tracking not available on this backend")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s started\n", id)
			return nil
		})
	},
}

var (
	setSession  string
	setExercise string
	setIndex    int
	setReps     int
	setWeightKg float64
)

var workoutLogSetCmd = &cobra.Command{
	Use:   "log-set",
	Short: "Log a set in the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			err := client.LogSet(cmd.Context(), model.Set{
				SessionID: setSession,
				Exercise:  setExercise,
				SetIndex:  setIndex,
				Reps:      setReps,
				WeightKg:  setWeightKg,
			})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Log failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set logged: %s x%d @ %.1f kg\n", setExercise, setReps, setWeightKg)
			return nil
		})
	},
}

var (
	finishSession string
	finishNotes   string
	finishKcal    float64
)

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish a workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			if err := client.FinishWorkout(cmd.Context(), finishSession, finishNotes, finishKcal); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Finish failed: %v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workout finished")
			return nil
		})
	},
}

var workoutDetailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show one workout with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			w, err := client.WorkoutDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if w == nil {
				fmt.Fprintln(out, "Not available")
				return nil
			}
			name := w.Name
			if name == "" {
				name = "Workout"
			}
			now := time.Now()
			fmt.Fprintf(out, "%s  %d min  %d kcal\n", name, service.Minutes(*w, now), service.EstimateCalories(*w, 0, now))
			for _, s := range w.Sets {
				fmt.Fprintf(out, "  #%d %s x%d @ %.1f kg\n", s.SetIndex, s.Exercise, s.Reps, s.WeightKg)
			}
			return nil
		})
	},
}

var workoutLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			printLastWorkout(cmd.Context(), cmd.OutOrStdout(), client, time.Now())
			return nil
		})
	},
}

var exerciseSearchLimit int

var workoutExercisesCmd = &cobra.Command{
	Use:   "exercises <query>",
	Short: "Search the exercise catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			exercises, err := client.SearchExercises(cmd.Context(), args[0], exerciseSearchLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(exercises) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}
			for _, e := range exercises {
				if e.MuscleGroup != "" {
					fmt.Fprintf(out, "%s (%s)\n", e.Name, e.MuscleGroup)
					continue
				}
				fmt.Fprintln(out, e.Name)
			}
			return nil
		})
	},
}

var workoutRecommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "Show recommended workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			recs, err := client.RecommendedWorkouts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No recommendations")
				return nil
			}
			for _, r := range recs {
				fmt.Fprintln(out, r.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutListCmd, workoutStartCmd, workoutLogSetCmd, workoutFinishCmd,
		workoutDetailCmd, workoutLastCmd, workoutExercisesCmd, workoutRecommendedCmd)

	workoutListCmd.Flags().IntVar(&workoutListLimit, "limit", 20, "Maximum workouts")

	workoutLogSetCmd.Flags().StringVar(&setSession, "session", "", "Session id")
	workoutLogSetCmd.Flags().StringVar(&setExercise, "exercise", "", "Exercise name")
	workoutLogSetCmd.Flags().IntVar(&setIndex, "index", 1, "Set index")
	workoutLogSetCmd.Flags().IntVar(&setReps, "reps", 0, "Repetitions")
	workoutLogSetCmd.Flags().Float64Var(&setWeightKg, "kg", 0, "Weight in kg")

	workoutFinishCmd.Flags().StringVar(&finishSession, "session", "", "Session id")
	workoutFinishCmd.Flags().StringVar(&finishNotes, "notes", "", "Session notes")
	workoutFinishCmd.Flags().Float64Var(&finishKcal, "kcal", 0, "Calories burned")

	workoutExercisesCmd.Flags().IntVar(&exerciseSearchLimit, "limit", 50, "Maximum results")
}
