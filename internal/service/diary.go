// Package service contains pure aggregation helpers that reshape fetched data
// into dashboard-ready numbers. Nothing here performs I/O and nothing here
// returns an error: malformed input degrades to zero values so a partial
// backend outage degrades the dashboard instead of crashing it.
package service

import (
	"math"

	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// Weight-based macro coefficients, grams per kilogram of target body weight.
const (
	proteinGPerKg = 1.6
	fatGPerKg     = 0.8
)

// Totals is a macro sum over a set of meal items.
type Totals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DailyTotals sums macros across all items of all meals. Nil and empty input
// both yield zero totals.
func DailyTotals(meals []model.Meal) Totals {
	var t Totals
	for _, m := range meals {
		for _, it := range m.Items {
			t.Calories += it.Calories
			t.ProteinG += it.ProteinG
			t.CarbsG += it.CarbsG
			t.FatG += it.FatG
		}
	}
	return t
}

// MacroSplit is a percentage-of-calories goal split.
type MacroSplit struct {
	CarbsPct   float64
	ProteinPct float64
	FatPct     float64
}

// MacroGoals is a derived per-day gram target.
type MacroGoals struct {
	ProteinG int
	CarbsG   int
	FatG     int
}

// DeriveMacroGoals computes gram targets. With a positive body weight the
// protein and fat targets come from per-kilogram coefficients and carbs
// absorb the remaining calorie budget; otherwise the percentage split is
// applied directly. Results are rounded and never negative.
func DeriveMacroGoals(calorieGoal float64, split MacroSplit, weightKg float64) MacroGoals {
	if weightKg > 0 && !math.IsNaN(weightKg) && !math.IsInf(weightKg, 0) {
		proteinG := roundNonNeg(proteinGPerKg * weightKg)
		fatG := roundNonNeg(fatGPerKg * weightKg)
		usedCal := float64(proteinG)*4 + float64(fatG)*9
		carbCal := math.Max(0, math.Round(calorieGoal-usedCal))
		return MacroGoals{
			ProteinG: proteinG,
			CarbsG:   int(math.Round(carbCal / 4)),
			FatG:     fatG,
		}
	}

	cal := math.Max(0, calorieGoal)
	return MacroGoals{
		ProteinG: roundNonNeg(cal * split.ProteinPct / 100 / 4),
		CarbsG:   roundNonNeg(cal * split.CarbsPct / 100 / 4),
		FatG:     roundNonNeg(cal * split.FatPct / 100 / 9),
	}
}

// ScaleNutrients converts a per-100g nutrient baseline to an absolute amount
// for the given gram quantity. Non-positive quantities scale to zero.
func ScaleNutrients(p model.Product, grams float64) model.Nutrients {
	if grams <= 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return model.Nutrients{}
	}
	factor := grams / 100
	return model.Nutrients{
		Calories: p.Nutrients.Calories * factor,
		ProteinG: p.Nutrients.ProteinG * factor,
		CarbsG:   p.Nutrients.CarbsG * factor,
		FatG:     p.Nutrients.FatG * factor,
	}
}

// GroupItemsByType buckets every meal item under its meal's type. All four
// buckets are always present so views can iterate them unconditionally.
func GroupItemsByType(meals []model.Meal) map[model.MealType][]model.MealItem {
	groups := map[model.MealType][]model.MealItem{
		model.MealBreakfast: {},
		model.MealLunch:     {},
		model.MealDinner:    {},
		model.MealSnack:     {},
	}
	for _, m := range meals {
		t := m.MealType
		if _, ok := groups[t]; !ok {
			t = model.MealSnack
		}
		groups[t] = append(groups[t], m.Items...)
	}
	return groups
}

func roundNonNeg(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
