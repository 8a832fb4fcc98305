package api

import (
	"context"
	"net/url"
	"time"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// MealsToday lists today's meals with their items.
func (c *Client) MealsToday(ctx context.Context) ([]model.Meal, error) {
	raw, err := c.gw.Call(ctx, action("meals-today", nil))
	if err != nil {
		return nil, err
	}
	return gateway.DecodeList[model.Meal](raw, "meals", "items"), nil
}

// MealsRange lists meals within [start, end].
func (c *Client) MealsRange(ctx context.Context, start, end time.Time) ([]model.Meal, error) {
	raw, err := c.gw.Call(ctx, action("meals-range", url.Values{
		"start": {start.Format(time.RFC3339)},
		"end":   {end.Format(time.RFC3339)},
	}))
	if err != nil {
		return nil, err
	}
	return gateway.DecodeList[model.Meal](raw, "meals", "items"), nil
}

// MealsOn lists meals for the local calendar day containing date.
func (c *Client) MealsOn(ctx context.Context, date time.Time) ([]model.Meal, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return c.MealsRange(ctx, start, end)
}

type createMealRequest struct {
	MealType model.MealType `json:"meal_type"`
	EatenAt  string         `json:"eaten_at,omitempty"`
}

// CreateMeal creates a meal slot. A zero eatenAt means "now" server-side.
func (c *Client) CreateMeal(ctx context.Context, mealType string, eatenAt time.Time) (*model.Meal, error) {
	body := createMealRequest{MealType: model.NormalizeMealType(mealType)}
	if !eatenAt.IsZero() {
		body.EatenAt = eatenAt.Format(time.RFC3339)
	}
	raw, err := c.gw.Call(ctx, action("create-meal", nil), gateway.WithBody(body))
	if err != nil {
		return nil, err
	}
	meal, ok := gateway.DecodeObject[model.Meal](raw, "meal")
	if !ok {
		return nil, &errs.ShapeError{Path: "create-meal"}
	}
	return &meal, nil
}

// EnsureMealToday returns today's meal of the given type, creating it if
// absent. The UI calls this before adding items.
func (c *Client) EnsureMealToday(ctx context.Context, mealType string) (*model.Meal, error) {
	body := createMealRequest{MealType: model.NormalizeMealType(mealType)}
	raw, err := c.gw.Call(ctx, action("ensure-meal-today", nil), gateway.WithBody(body))
	if err != nil {
		return nil, err
	}
	meal, ok := gateway.DecodeObject[model.Meal](raw, "meal")
	if !ok {
		return nil, &errs.ShapeError{Path: "ensure-meal-today"}
	}
	return &meal, nil
}

// ManualItem is the payload for a hand-entered diary row. Macro values are
// absolute for the entered quantity.
type ManualItem struct {
	MealID   string  `json:"meal_id"`
	FoodName string  `json:"food_name"`
	Qty      float64 `json:"qty,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Calories float64 `json:"calories,omitempty"`
	ProteinG float64 `json:"protein_g,omitempty"`
	CarbsG   float64 `json:"carbs_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
}

// AddMealItemManual logs a manually entered item. A meal item always belongs
// to exactly one meal, so the meal id is required up front.
func (c *Client) AddMealItemManual(ctx context.Context, item ManualItem) (*model.MealItem, error) {
	if item.MealID == "" {
		return nil, &ValidationError{Field: "meal_id", Reason: "required"}
	}
	if item.FoodName == "" {
		return nil, &ValidationError{Field: "food_name", Reason: "required"}
	}
	raw, err := c.gw.Call(ctx, action("add-meal-item-manual", nil), gateway.WithBody(item))
	if err != nil {
		return nil, err
	}
	out, ok := gateway.DecodeObject[model.MealItem](raw, "item")
	if !ok {
		return nil, &errs.ShapeError{Path: "add-meal-item-manual"}
	}
	return &out, nil
}

type productItemRequest struct {
	MealID  string        `json:"meal_id"`
	Product model.Product `json:"product"`
	Qty     float64       `json:"qty"`
	Unit    string        `json:"unit"`
}

// AddMealItemFromProduct converts a search/barcode product into a diary item.
// The backend scales the per-100g baseline to the given quantity; the
// conversion contract is covered by service.ScaleNutrients on the preview
// path. Optional: absent endpoint yields (nil, nil).
func (c *Client) AddMealItemFromProduct(ctx context.Context, mealID string, product model.Product, qty float64, unit string) (*model.MealItem, error) {
	if mealID == "" {
		return nil, &ValidationError{Field: "meal_id", Reason: "required"}
	}
	if qty <= 0 {
		qty = 100
	}
	if unit == "" {
		unit = "g"
	}
	raw, err := c.gw.Optional(ctx, action("add-meal-item", nil), gateway.WithBody(productItemRequest{
		MealID:  mealID,
		Product: product,
		Qty:     qty,
		Unit:    unit,
	}))
	if err != nil || raw == nil {
		return nil, err
	}
	out, ok := gateway.DecodeObject[model.MealItem](raw, "item")
	if !ok {
		return nil, &errs.ShapeError{Path: "add-meal-item"}
	}
	return &out, nil
}
