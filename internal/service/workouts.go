package service

import (
	"math"
	"time"

	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// Workout energy estimation. The MET formula is the standard
// kcal = MET x 3.5 x bodyWeightKg / 200 x minutes, at a fixed
// moderate-intensity MET. Clamps guard against corrupt timestamps.
const (
	moderateMET            = 3.5
	maxWorkoutMinutes      = 180  // per workout
	maxDailyExerciseKcal   = 8000 // per day
	maxPlausibleRecordKcal = 3000 // above this a recorded value is ignored
)

// timestamp formats the backend has emitted over time.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// firstTimestamp resolves the first parseable candidate, in order.
func firstTimestamp(candidates ...string) (time.Time, bool) {
	for _, c := range candidates {
		if t, ok := parseTimestamp(c); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartTime resolves a workout's start across historical field names.
func StartTime(w model.Workout) (time.Time, bool) {
	return firstTimestamp(w.StartedAt, w.StartTime, w.Date, w.CompletedAt, w.EndedAt)
}

// EffectiveTime resolves the single timestamp used to order workouts,
// preferring completion over start so ongoing sessions sort by what is known.
func EffectiveTime(w model.Workout) (time.Time, bool) {
	return firstTimestamp(w.EndedAt, w.CompletedAt, w.Date, w.StartedAt, w.StartTime)
}

// PickLatest returns the workout with the maximum effective timestamp, nil
// when none has a resolvable time.
func PickLatest(workouts []model.Workout) *model.Workout {
	var best *model.Workout
	var bestAt time.Time
	for i := range workouts {
		at, ok := EffectiveTime(workouts[i])
		if !ok {
			continue
		}
		if best == nil || at.After(bestAt) {
			best = &workouts[i]
			bestAt = at
		}
	}
	return best
}

// Minutes computes a workout's duration. Finished sessions use end-start,
// ongoing ones count up to now clamped at three hours, and sessions with no
// usable timestamps fall back to the recorded duration field.
func Minutes(w model.Workout, now time.Time) int {
	start, startOK := firstTimestamp(w.StartedAt, w.StartTime)
	end, endOK := firstTimestamp(w.EndedAt, w.EndTime, w.CompletedAt, w.Date)

	if startOK && endOK && end.After(start) {
		return maxInt(1, roundMinutes(end.Sub(start)))
	}
	if startOK && now.After(start) {
		return minInt(maxWorkoutMinutes, maxInt(1, roundMinutes(now.Sub(start))))
	}
	if w.DurationMin > 0 {
		return int(math.Round(w.DurationMin))
	}
	return 0
}

// EstimateCalories returns the server-recorded burn when it is plausible
// (positive and at most maxPlausibleRecordKcal), else a MET-based estimate
// from the workout duration and body weight.
func EstimateCalories(w model.Workout, weightKg float64, now time.Time) int {
	if v := w.RecordedCalories(); v > 0 && v <= maxPlausibleRecordKcal {
		return int(math.Round(v))
	}
	if weightKg <= 0 {
		weightKg = 70
	}
	mins := Minutes(w, now)
	return int(math.Round(moderateMET * 3.5 * weightKg / 200 * float64(mins)))
}

// DayStats is the per-day exercise aggregate for the dashboard.
type DayStats struct {
	ActiveMin int
	Calories  int
}

// DayExerciseTotals aggregates minutes and calories over workouts that
// started within the local day containing day. Per-workout minutes clamp at
// three hours and the daily calorie total clamps at maxDailyExerciseKcal.
func DayExerciseTotals(workouts []model.Workout, weightKg float64, day, now time.Time) DayStats {
	start, end := DayRange(day)
	var stats DayStats
	for _, w := range workouts {
		s, ok := StartTime(w)
		if !ok || s.Before(start) || !s.Before(end) {
			continue
		}
		mins := minInt(maxWorkoutMinutes, Minutes(w, now))
		if mins == 0 {
			continue
		}
		stats.ActiveMin += mins
		stats.Calories += EstimateCalories(w, weightKg, now)
	}
	if stats.Calories > maxDailyExerciseKcal {
		stats.Calories = maxDailyExerciseKcal
	}
	if stats.Calories < 0 {
		stats.Calories = 0
	}
	return stats
}

// WeeklyStats is the rolling 7-day summary.
type WeeklyStats struct {
	Workouts  int
	Calories  int
	ActiveMin int
}

// WeeklySummary aggregates workouts whose effective time falls within the
// last seven days ending at now. Used when the server-side summary endpoint
// is absent.
func WeeklySummary(workouts []model.Workout, weightKg float64, now time.Time) WeeklyStats {
	cutoff := now.AddDate(0, 0, -6)
	var stats WeeklyStats
	for _, w := range workouts {
		at, ok := EffectiveTime(w)
		if !ok || at.Before(cutoff) || at.After(now) {
			continue
		}
		stats.Workouts++
		stats.ActiveMin += Minutes(w, now)
		stats.Calories += EstimateCalories(w, weightKg, now)
	}
	return stats
}

// WorkoutStreak counts consecutive calendar days ending today that have at
// least one workout, scanning back at most 90 days.
func WorkoutStreak(workouts []model.Workout, now time.Time) int {
	days := make(map[string]bool)
	for _, w := range workouts {
		at, ok := firstTimestamp(w.CompletedAt, w.EndedAt, w.StartedAt, w.Date, w.StartTime)
		if !ok {
			continue
		}
		days[at.Format("2006-01-02")] = true
	}
	streak := 0
	for i := 0; i < 90; i++ {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		if !days[key] {
			break
		}
		streak++
	}
	return streak
}

// DayRange returns the local [midnight, next midnight) window containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// SameLocalDay reports whether a and b fall on the same calendar day in a's
// location.
func SameLocalDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
