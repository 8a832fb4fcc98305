package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Record a body weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse weight: %w", err)
		}
		return withAPI(func(client *api.Client) error {
			if err := client.AddWeight(cmd.Context(), kg, time.Now()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Add failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f kg\n", kg)
			return nil
		})
	},
}

var weightListLimit int

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			entries, err := client.Weights(cmd.Context(), weightListLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %.1f kg\n", e.RecordedAt.Format("2006-01-02"), e.WeightKg)
			}
			return nil
		})
	},
}

var weightLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			e, err := client.LatestWeight(cmd.Context())
			if err != nil {
				return err
			}
			if e == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f kg (%s)\n", e.WeightKg, e.RecordedAt.Format("2006-01-02"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightLatestCmd)

	weightListCmd.Flags().IntVar(&weightListLimit, "limit", 30, "Maximum entries")
}
