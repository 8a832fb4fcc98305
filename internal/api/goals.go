package api

import (
	"context"
	"math"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// goalRow is one open goal row as the backend stores it (append a new row,
// close the old one via end_date).
type goalRow struct {
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	Unit        string  `json:"unit,omitempty"`
}

// Goals returns the current goal set: server rows merged over the shipped
// defaults, so a backend missing a goal type still yields a usable value.
func (c *Client) Goals(ctx context.Context) (model.Goals, error) {
	g := model.DefaultGoals()
	raw, err := c.gw.Optional(ctx, action("goals", nil))
	if err != nil {
		return g, err
	}
	if raw == nil {
		return g, nil
	}
	for _, row := range gateway.DecodeList[goalRow](raw, "goals", "items") {
		switch row.GoalType {
		case "calories":
			g.Calories = row.TargetValue
		case "carbs_pct":
			g.CarbsPct = row.TargetValue
		case "protein_pct":
			g.ProteinPct = row.TargetValue
		case "fat_pct":
			g.FatPct = row.TargetValue
		case "weight":
			g.WeightKg = row.TargetValue
		case "water_cups":
			g.WaterCups = row.TargetValue
		case "workout_days":
			g.WorkoutDays = row.TargetValue
		}
	}
	return g, nil
}

// validateMacroSplit enforces the 100% invariant on every goal-writing path.
// An invalid split is rejected locally; nothing is sent.
func validateMacroSplit(carbsPct, proteinPct, fatPct float64) error {
	sum := carbsPct + proteinPct + fatPct
	if math.Abs(sum-100) > 1e-9 {
		return &ValidationError{Field: "macro split", Reason: "carbs/protein/fat percentages must sum to 100"}
	}
	return nil
}

// SaveGoals replaces the current goal set. The backend closes the open rows
// and appends new ones; client and server validation of the macro split may
// skew across releases, so the local check runs first and is authoritative
// for this client.
func (c *Client) SaveGoals(ctx context.Context, g model.Goals) error {
	if err := validateMacroSplit(g.CarbsPct, g.ProteinPct, g.FatPct); err != nil {
		return err
	}
	if g.Calories <= 0 {
		return &ValidationError{Field: "calories", Reason: "must be positive"}
	}
	rows := []goalRow{
		{GoalType: "calories", TargetValue: g.Calories, Unit: "kcal"},
		{GoalType: "carbs_pct", TargetValue: g.CarbsPct, Unit: "%"},
		{GoalType: "protein_pct", TargetValue: g.ProteinPct, Unit: "%"},
		{GoalType: "fat_pct", TargetValue: g.FatPct, Unit: "%"},
		{GoalType: "weight", TargetValue: g.WeightKg, Unit: "kg"},
		{GoalType: "water_cups", TargetValue: g.WaterCups, Unit: "cups"},
		{GoalType: "workout_days", TargetValue: g.WorkoutDays, Unit: "days/week"},
	}
	_, err := c.gw.Call(ctx, action("save-goals", nil), gateway.WithBody(map[string]any{
		"goals": rows,
	}))
	return err
}

// UpsertProfileAndGoals writes profile fields and goal targets in one call,
// used by onboarding. The macro invariant applies here too when a split is
// supplied.
func (c *Client) UpsertProfileAndGoals(ctx context.Context, profile model.Profile, goals *model.Goals) error {
	body := map[string]any{}
	if profile.DisplayName != "" {
		body["display_name"] = profile.DisplayName
	}
	if profile.CalorieGoal > 0 {
		body["calorie_goal"] = profile.CalorieGoal
	}
	if profile.WaterGoalMl > 0 {
		body["water_goal_ml"] = profile.WaterGoalMl
	}
	if profile.ActiveMinutesGoal > 0 {
		body["active_minutes_goal"] = profile.ActiveMinutesGoal
	}
	if profile.TargetWeightKg > 0 {
		body["target_weight_kg"] = profile.TargetWeightKg
	}
	if goals != nil {
		if err := validateMacroSplit(goals.CarbsPct, goals.ProteinPct, goals.FatPct); err != nil {
			return err
		}
		body["goals"] = *goals
	}
	_, err := c.gw.Call(ctx, action("upsert-profile-and-goals", nil), gateway.WithBody(body))
	return err
}
