package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/api"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search the food catalog and log products",
}

var foodSearchLimit int

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			products, err := client.SearchFoods(cmd.Context(), args[0], foodSearchLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}
			for _, p := range products {
				brand := p.Brand
				if brand == "" {
					brand = "-"
				}
				fmt.Fprintf(out, "%s  [%s]  %.0f kcal/100g  P%.1f C%.1f F%.1f\n",
					p.Name, brand,
					p.Nutrients.Calories, p.Nutrients.ProteinG, p.Nutrients.CarbsG, p.Nutrients.FatG)
			}
			return nil
		})
	},
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <ean>",
	Short: "Look up a product by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPI(func(client *api.Client) error {
			p, err := client.LookupEAN(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, "No product found")
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", p.Name, p.Brand)
			fmt.Fprintf(out, "Per 100g: %.0f kcal  P%.1f C%.1f F%.1f\n",
				p.Nutrients.Calories, p.Nutrients.ProteinG, p.Nutrients.CarbsG, p.Nutrients.FatG)
			return nil
		})
	},
}

var (
	foodLogType string
	foodLogQty  float64
)

var foodLogCmd = &cobra.Command{
	Use:   "log <ean> [grams]",
	Short: "Log a barcode product to today's meal",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty := foodLogQty
		if len(args) == 2 {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse grams: %w", err)
			}
			qty = v
		}
		return withAPI(func(client *api.Client) error {
			ctx := cmd.Context()
			p, err := client.LookupEAN(ctx, args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no product found for barcode %s", args[0])
			}
			meal, err := client.EnsureMealToday(ctx, foodLogType)
			if err != nil {
				return err
			}
			item, err := client.AddMealItemFromProduct(ctx, meal.ID, *p, qty, "g")
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Log failed: %v\n", err)
				return err
			}
			out := cmd.OutOrStdout()
			if item != nil {
				fmt.Fprintf(out, "Logged %s (%.0f kcal)\n", item.FoodName, item.Calories)
				return nil
			}
			// Backend without the product endpoint: preview the client-side
			// scaling so the user still sees what would have been logged.
			scaled := service.ScaleNutrients(*p, qty)
			fmt.Fprintf(out, "Product logging not available on this backend (%.0fg of %s = %.0f kcal)\n",
				qty, p.Name, scaled.Calories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodLookupCmd, foodLogCmd)

	foodSearchCmd.Flags().IntVar(&foodSearchLimit, "limit", 25, "Maximum results")
	foodLogCmd.Flags().StringVar(&foodLogType, "type", "snack", "Meal type")
	foodLogCmd.Flags().Float64Var(&foodLogQty, "qty", 100, "Quantity in grams")
}
