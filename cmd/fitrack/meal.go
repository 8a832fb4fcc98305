package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

var mealOrder = []model.MealType{
	model.MealBreakfast,
	model.MealLunch,
	model.MealDinner,
	model.MealSnack,
}

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage the food diary",
}

var mealDate string

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals and items for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			ctx := cmd.Context()
			meals, err := func() ([]model.Meal, error) {
				if mealDate == "" {
					return client.MealsToday(ctx)
				}
				d, err := time.ParseInLocation("2006-01-02", mealDate, time.Local)
				if err != nil {
					return nil, fmt.Errorf("parse --date: %w", err)
				}
				return client.MealsOn(ctx, d)
			}()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			groups := service.GroupItemsByType(meals)
			for _, t := range mealOrder {
				items := groups[t]
				fmt.Fprintf(out, "%s (%d items)\n", t, len(items))
				for _, it := range items {
					fmt.Fprintf(out, "  %s  %.0f kcal  P%.0f C%.0f F%.0f\n",
						it.FoodName, it.Calories, it.ProteinG, it.CarbsG, it.FatG)
				}
			}
			totals := service.DailyTotals(meals)
			fmt.Fprintf(out, "Total: %.0f kcal  P%.0f C%.0f F%.0f\n",
				totals.Calories, totals.ProteinG, totals.CarbsG, totals.FatG)
			return nil
		})
	},
}

var (
	mealAddType     string
	mealAddName     string
	mealAddQty      float64
	mealAddUnit     string
	mealAddCalories float64
	mealAddProtein  float64
	mealAddCarbs    float64
	mealAddFat      float64
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a manual diary entry to today's meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mealAddName == "" {
			return fmt.Errorf("--name is required")
		}
		return withAPI(func(client *api.Client) error {
			ctx := cmd.Context()
			meal, err := client.EnsureMealToday(ctx, mealAddType)
			if err != nil {
				return err
			}
			item, err := client.AddMealItemManual(ctx, api.ManualItem{
				MealID:   meal.ID,
				FoodName: mealAddName,
				Qty:      mealAddQty,
				Unit:     mealAddUnit,
				Calories: mealAddCalories,
				ProteinG: mealAddProtein,
				CarbsG:   mealAddCarbs,
				FatG:     mealAddFat,
			})
			if err != nil {
				// One-off mutations surface the raw error message.
				fmt.Fprintf(cmd.ErrOrStderr(), "Add failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f kcal) to %s\n", item.FoodName, item.Calories, meal.MealType)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealListCmd, mealAddCmd)

	mealListCmd.Flags().StringVar(&mealDate, "date", "", "Day to list (YYYY-MM-DD, default today)")

	mealAddCmd.Flags().StringVar(&mealAddType, "type", "snack", "Meal type (breakfast/lunch/dinner/snack)")
	mealAddCmd.Flags().StringVar(&mealAddName, "name", "", "Food name")
	mealAddCmd.Flags().Float64Var(&mealAddQty, "qty", 0, "Quantity")
	mealAddCmd.Flags().StringVar(&mealAddUnit, "unit", "g", "Unit")
	mealAddCmd.Flags().Float64Var(&mealAddCalories, "kcal", 0, "Calories")
	mealAddCmd.Flags().Float64Var(&mealAddProtein, "protein", 0, "Protein grams")
	mealAddCmd.Flags().Float64Var(&mealAddCarbs, "carbs", 0, "Carb grams")
	mealAddCmd.Flags().Float64Var(&mealAddFat, "fat", 0, "Fat grams")
}
