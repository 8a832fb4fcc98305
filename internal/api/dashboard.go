package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// DashboardPayload is the optional server-side dashboard aggregate. Both
// historical spellings of the last-workout key are decoded.
type DashboardPayload struct {
	LastWorkout    *model.Workout `json:"last_workout"`
	LastWorkoutAlt *model.Workout `json:"lastWorkout"`
	Steps          *model.Steps   `json:"steps,omitempty"`
	Water          *model.Water   `json:"water,omitempty"`
}

// EffectiveLastWorkout resolves the key drift.
func (d *DashboardPayload) EffectiveLastWorkout() *model.Workout {
	if d == nil {
		return nil
	}
	if d.LastWorkout != nil {
		return d.LastWorkout
	}
	return d.LastWorkoutAlt
}

// Dashboard fetches the server-side aggregate. Optional.
func (c *Client) Dashboard(ctx context.Context) (*DashboardPayload, error) {
	raw, err := c.gw.Optional(ctx, action("dashboard", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	var d DashboardPayload
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, nil
	}
	return &d, nil
}

// Profile fetches the user profile. Optional.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	raw, err := c.gw.Optional(ctx, action("profile", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	p, ok := gateway.DecodeObject[model.Profile](raw, "profile")
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// StepsToday fetches the daily step count. Optional.
func (c *Client) StepsToday(ctx context.Context) (*model.Steps, error) {
	raw, err := c.gw.Optional(ctx, action("steps-today", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	s, ok := gateway.DecodeObject[model.Steps](raw)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// WaterToday fetches today's water intake. Optional.
func (c *Client) WaterToday(ctx context.Context) (*model.Water, error) {
	raw, err := c.gw.Optional(ctx, action("water-today", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	w, ok := gateway.DecodeObject[model.Water](raw)
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// AddWater logs a water intake event. A zero at means "now" server-side.
// Optional.
func (c *Client) AddWater(ctx context.Context, ml float64, at time.Time) error {
	if ml <= 0 {
		return &ValidationError{Field: "ml", Reason: "must be positive"}
	}
	body := map[string]any{"ml": ml}
	if !at.IsZero() {
		body["at"] = at.Format(time.RFC3339)
	}
	_, err := c.gw.Optional(ctx, action("add-water", nil), gateway.WithBody(body))
	return err
}
