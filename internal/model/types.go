// Package model holds the domain types exchanged with the function gateway.
package model

import "time"

// MealType is the diary slot a meal belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// NormalizeMealType folds user/backend spelling variants into a valid MealType.
// Unknown values land in the snack bucket, matching the diary behavior.
func NormalizeMealType(s string) MealType {
	switch MealType(trimLower(s)) {
	case "snacks":
		return MealSnack
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return MealType(trimLower(s))
	default:
		return MealSnack
	}
}

// Session is the authenticated user context. The access token is an opaque,
// time-limited JWT issued by the auth service; the client never verifies it.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

// Valid reports whether the session carries a token usable at the given time.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Nutrients is a per-100g (products) or absolute (meal items) macro snapshot.
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Product is a transient search/barcode result; it is never persisted by the
// client, only converted into a MealItem.
type Product struct {
	EAN       string    `json:"ean,omitempty"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Image     string    `json:"image,omitempty"`
	Nutrients Nutrients `json:"nutrients"`
	Source    string    `json:"source,omitempty"`
}

// MealItem is one logged food row. Macro values are absolute for the logged
// quantity, not per-100g.
type MealItem struct {
	ID       string         `json:"id"`
	MealID   string         `json:"meal_id"`
	FoodName string         `json:"food_name"`
	Qty      float64        `json:"qty,omitempty"`
	Unit     string         `json:"unit,omitempty"`
	Calories float64        `json:"calories,omitempty"`
	ProteinG float64        `json:"protein_g,omitempty"`
	CarbsG   float64        `json:"carbs_g,omitempty"`
	FatG     float64        `json:"fat_g,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// Meal is a diary slot instance for one day.
type Meal struct {
	ID       string     `json:"id"`
	MealType MealType   `json:"meal_type"`
	EatenAt  time.Time  `json:"eaten_at"`
	Notes    string     `json:"notes,omitempty"`
	Items    []MealItem `json:"meal_items,omitempty"`
}

// WeightEntry is one append-only body weight record.
type WeightEntry struct {
	ID         string    `json:"id"`
	WeightKg   float64   `json:"weight_kg"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Set is one logged exercise set inside a workout session.
type Set struct {
	SessionID string  `json:"session_id"`
	Exercise  string  `json:"exercise"`
	SetIndex  int     `json:"set_index"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weight_kg"`
}

// Workout is a workout session row. Timestamp field names drifted across
// backend versions, so every historical alias is decoded; resolution into one
// effective time lives in the service package.
type Workout struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	StartedAt      string  `json:"started_at,omitempty"`
	StartTime      string  `json:"start_time,omitempty"`
	EndedAt        string  `json:"ended_at,omitempty"`
	EndTime        string  `json:"end_time,omitempty"`
	CompletedAt    string  `json:"completed_at,omitempty"`
	Date           string  `json:"date,omitempty"`
	DurationMin    float64 `json:"duration_min,omitempty"`
	CaloriesBurned float64 `json:"calories_burned,omitempty"`
	Calories       float64 `json:"calories,omitempty"`
	Sets           []Set   `json:"sets,omitempty"`
}

// RecordedCalories returns the server-side calorie value under either
// historical key, zero when absent.
func (w Workout) RecordedCalories() float64 {
	if w.CaloriesBurned > 0 {
		return w.CaloriesBurned
	}
	return w.Calories
}

// Goals is the current goal set for a user. The backend versions goals by
// closing rows (end_date) and appending; the client only ever sees the open
// row per goal type, flattened into this struct.
type Goals struct {
	Calories    float64 `json:"calories"`
	CarbsPct    float64 `json:"carbs_pct"`
	ProteinPct  float64 `json:"protein_pct"`
	FatPct      float64 `json:"fat_pct"`
	WeightKg    float64 `json:"weight"`
	WaterCups   float64 `json:"water_cups"`
	WorkoutDays float64 `json:"workout_days"`
}

// DefaultGoals mirrors the seed values the app ships with.
func DefaultGoals() Goals {
	return Goals{
		Calories:    2000,
		CarbsPct:    40,
		ProteinPct:  30,
		FatPct:      30,
		WeightKg:    75,
		WaterCups:   12,
		WorkoutDays: 3,
	}
}

// PlanEntry is one exercise slot in a favorite workout plan.
type PlanEntry struct {
	ExerciseID string  `json:"exercise_id,omitempty"`
	Exercise   string  `json:"exercise"`
	TargetSets int     `json:"target_sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg,omitempty"`
}

// FavoriteWorkout is a user-saved workout template.
type FavoriteWorkout struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Plan []PlanEntry `json:"plan"`
}

// Exercise is one catalog entry from the exercise search.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
}

// Profile is the profile+goal upsert payload.
type Profile struct {
	DisplayName       string  `json:"display_name,omitempty"`
	CalorieGoal       float64 `json:"calorie_goal,omitempty"`
	WaterGoalMl       float64 `json:"water_goal_ml,omitempty"`
	ActiveMinutesGoal float64 `json:"active_minutes_goal,omitempty"`
	TargetWeightKg    float64 `json:"target_weight_kg,omitempty"`
}

// Steps is the optional daily step widget payload. Older backends sent the
// count under "value" instead of "steps".
type Steps struct {
	Steps float64 `json:"steps"`
	Value float64 `json:"value,omitempty"`
	Goal  float64 `json:"goal,omitempty"`
}

// Count resolves the step count across both wire spellings.
func (s Steps) Count() float64 {
	if s.Steps > 0 {
		return s.Steps
	}
	return s.Value
}

// Water is the optional daily water widget payload. Older backends sent the
// volume under "value_ml".
type Water struct {
	Ml      float64 `json:"ml"`
	ValueMl float64 `json:"value_ml,omitempty"`
}

// Volume resolves the water volume across both wire spellings.
func (w Water) Volume() float64 {
	if w.Ml > 0 {
		return w.Ml
	}
	return w.ValueMl
}
