package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Log water intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse ml: %w", err)
		}
		return withAPI(func(client *api.Client) error {
			if err := client.AddWater(cmd.Context(), ml, time.Time{}); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Add failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.0f ml\n", ml)
			return nil
		})
	},
}

var waterTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			w, err := client.WaterToday(cmd.Context())
			if err != nil {
				return err
			}
			if w == nil {
				fmt.Fprintln(cmd.OutOrStdout(), placeholder)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.0f ml\n", w.Volume())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterTodayCmd)
}
