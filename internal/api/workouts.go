package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
	"github.com/wytfitness/Fitness-App-04112025/internal/service"
)

var workoutListKeys = []string{"workouts", "items"}

// Workouts lists recent workout sessions.
func (c *Client) Workouts(ctx context.Context, limit int) ([]model.Workout, error) {
	if limit <= 0 {
		limit = 20
	}
	raw, err := c.gw.Call(ctx, action("workouts", url.Values{"limit": {strconv.Itoa(limit)}}))
	if err != nil {
		return nil, err
	}
	return gateway.DecodeList[model.Workout](raw, workoutListKeys...), nil
}

// StartWorkout opens a session and returns its id. Optional: an absent
// endpoint yields ("", nil).
func (c *Client) StartWorkout(ctx context.Context, name string) (string, error) {
	raw, err := c.gw.Optional(ctx, action("start-workout", nil), gateway.WithBody(map[string]any{
		"name": name,
	}))
	if err != nil || raw == nil {
		return "", err
	}
	var ack struct {
		SessionID string `json:"session_id"`
		ID        string `json:"id"`
		Session   struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		return "", nil
	}
	for _, id := range []string{ack.SessionID, ack.ID, ack.Session.ID} {
		if id != "" {
			return id, nil
		}
	}
	return "", nil
}

// LogSet appends a set to an active session. Optional.
func (c *Client) LogSet(ctx context.Context, set model.Set) error {
	if set.SessionID == "" {
		return &ValidationError{Field: "session_id", Reason: "required"}
	}
	_, err := c.gw.Optional(ctx, action("log-set", nil), gateway.WithBody(set))
	return err
}

// FinishWorkout closes a session. caloriesBurned may be the client-side
// estimate when the session tracked no device data. Optional.
func (c *Client) FinishWorkout(ctx context.Context, sessionID, notes string, caloriesBurned float64) error {
	if sessionID == "" {
		return &ValidationError{Field: "session_id", Reason: "required"}
	}
	_, err := c.gw.Optional(ctx, action("finish-workout", nil), gateway.WithBody(map[string]any{
		"session_id":      sessionID,
		"notes":           notes,
		"calories_burned": caloriesBurned,
	}))
	return err
}

// WorkoutDetail fetches one session with its sets. Optional.
func (c *Client) WorkoutDetail(ctx context.Context, id string) (*model.Workout, error) {
	raw, err := c.gw.Optional(ctx, action("workout-detail", url.Values{"id": {id}}))
	if err != nil || raw == nil {
		return nil, err
	}
	w, ok := gateway.DecodeObject[model.Workout](raw, "workout", "session")
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// RecommendedWorkouts returns the suggestion rail. Optional.
func (c *Client) RecommendedWorkouts(ctx context.Context) ([]model.Workout, error) {
	raw, err := c.gw.Optional(ctx, action("recommended-workouts", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	return gateway.DecodeList[model.Workout](raw, workoutListKeys...), nil
}

// SearchExercises queries the exercise catalog. Optional; the caller-supplied
// ctx cancels superseded queries while the user types.
func (c *Client) SearchExercises(ctx context.Context, q string, limit int) ([]model.Exercise, error) {
	if limit <= 0 {
		limit = 50
	}
	raw, err := c.gw.Optional(ctx, action("exercises", url.Values{
		"q":     {q},
		"limit": {strconv.Itoa(limit)},
	}), gateway.WithTimeout(searchTimeout))
	if err != nil || raw == nil {
		return nil, err
	}
	return gateway.DecodeList[model.Exercise](raw, "exercises", "items"), nil
}

// FavoriteWorkouts lists saved workout templates. Optional.
func (c *Client) FavoriteWorkouts(ctx context.Context) ([]model.FavoriteWorkout, error) {
	raw, err := c.gw.Optional(ctx, action("favorite-workouts", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	return gateway.DecodeList[model.FavoriteWorkout](raw, "items", "favorites"), nil
}

// SaveFavoriteWorkout stores a template built from a completed session.
// Optional.
func (c *Client) SaveFavoriteWorkout(ctx context.Context, name string, plan []model.PlanEntry) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if len(plan) == 0 {
		return &ValidationError{Field: "plan", Reason: "must contain at least one exercise"}
	}
	_, err := c.gw.Optional(ctx, action("save-favorite-workout", nil), gateway.WithBody(map[string]any{
		"name": name,
		"plan": plan,
	}))
	return err
}

// lastWorkoutResolver is one strategy for locating the most recent workout.
// Strategies are tried in order and the chain stops at the first hit;
// individual strategy failures are logged and treated as a miss so a degraded
// backend cannot break the dashboard.
type lastWorkoutResolver struct {
	name    string
	resolve func(ctx context.Context) (*model.Workout, error)
}

// LastWorkout resolves the most recent workout through the ordered fallback
// chain: the dedicated endpoint, then the dashboard payload, then the workout
// list picked client-side.
func (c *Client) LastWorkout(ctx context.Context) (*model.Workout, error) {
	resolvers := []lastWorkoutResolver{
		{name: "last-workout", resolve: c.lastWorkoutEndpoint},
		{name: "dashboard", resolve: c.lastWorkoutFromDashboard},
		{name: "workout-list", resolve: c.lastWorkoutFromList},
	}
	for _, r := range resolvers {
		w, err := r.resolve(ctx)
		if err != nil {
			c.logger.Debug("last-workout resolver failed", zap.String("resolver", r.name), zap.Error(err))
			continue
		}
		if w != nil {
			return w, nil
		}
	}
	return nil, nil
}

func (c *Client) lastWorkoutEndpoint(ctx context.Context) (*model.Workout, error) {
	raw, err := c.gw.Optional(ctx, action("last-workout", nil))
	if err != nil || raw == nil {
		return nil, err
	}
	w, ok := gateway.DecodeObject[model.Workout](raw, "workout", "last_workout")
	if !ok || (w.ID == "" && w.Name == "" && w.StartedAt == "") {
		return nil, nil
	}
	return &w, nil
}

func (c *Client) lastWorkoutFromDashboard(ctx context.Context) (*model.Workout, error) {
	d, err := c.Dashboard(ctx)
	if err != nil || d == nil {
		return nil, err
	}
	return d.EffectiveLastWorkout(), nil
}

func (c *Client) lastWorkoutFromList(ctx context.Context) (*model.Workout, error) {
	workouts, err := c.Workouts(ctx, 25)
	if err != nil {
		return nil, err
	}
	return service.PickLatest(workouts), nil
}
