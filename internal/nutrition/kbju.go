// Package nutrition holds the pure nutrition rules: daily KBJU targets and
// the exclusion filter applied to recipes and products.
package nutrition

import (
	"math"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
)

const (
	weightLossKcalPerKg = 29
	weightLossFatG      = 50
	weightLossReserve   = 450

	muscleGainKcalPerKg = 36
	muscleGainSurplus   = 500
	muscleGainFatPerKg  = 1

	proteinPerKg = 2

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// NutritionTarget is the daily calorie and macronutrient target.
type NutritionTarget struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbsG   int `json:"carbs_g"`
}

// round rounds half up toward positive infinity, the same as JavaScript Math.round.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CalculateKBJU returns the daily target for the given body weight in kg and
// goal, or nil when no target can be computed.
func CalculateKBJU(weight float64, goal models.Goal) *NutritionTarget {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil
	}

	var t NutritionTarget
	switch goal {
	case models.GoalWeightLoss:
		t.Calories = round(weight * weightLossKcalPerKg)
		t.ProteinG = round(weight * proteinPerKg)
		t.FatG = weightLossFatG
		t.CarbsG = round(float64(t.Calories-t.ProteinG*kcalPerGramProtein-weightLossReserve) / kcalPerGramCarbs)
	case models.GoalMuscleGain:
		t.Calories = round(weight*muscleGainKcalPerKg) + muscleGainSurplus
		t.ProteinG = round(weight * proteinPerKg)
		t.FatG = round(weight * muscleGainFatPerKg)
		t.CarbsG = round(float64(t.Calories-t.ProteinG*kcalPerGramProtein-t.FatG*kcalPerGramFat) / kcalPerGramCarbs)
	default:
		return nil
	}

	if t.CarbsG < 0 {
		t.CarbsG = 0
	}
	return &t
}

// CalculateFromProfile is CalculateKBJU for optional profile fields.
func CalculateFromProfile(weight *float64, goal *models.Goal) *NutritionTarget {
	if weight == nil || goal == nil {
		return nil
	}
	return CalculateKBJU(*weight, *goal)
}
