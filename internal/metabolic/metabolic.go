// Package metabolic derives daily energy targets from a user profile using the
// Mifflin-St Jeor equation. Every stage is pure and tolerates incomplete
// profiles by returning documented fallback values instead of errors.
package metabolic

import (
	"math"

	"github.com/khaldoun36/GritSeason/internal/model"
)

// FallbackBMR is returned when the profile lacks goal weight, height, age or gender.
const FallbackBMR = 100

const (
	surplusFactor = 1.1
	deficitFactor = 0.9

	lowActivityProteinPerKg  = 1.2
	highActivityProteinPerKg = 1.8

	carbParts = 40.0
	fatParts  = 30.0

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

type Targets struct {
	BMR          int    `json:"bmr"`
	TDEE         int    `json:"tdee"`
	GoalCalories int    `json:"goalCalories"`
	Macros       Macros `json:"macros"`
}

// Compute runs BMR, TDEE, goal calories and the macro split in order.
func Compute(p model.UserProfile) Targets {
	bmr := BMR(p)
	tdee := TDEE(bmr, p.ActivityLevel)
	goal := GoalCalories(tdee, p.CurrentWeight, p.GoalWeight)
	return Targets{
		BMR:          bmr,
		TDEE:         tdee,
		GoalCalories: goal,
		Macros:       MacroSplit(goal, p.CurrentWeight, p.ActivityLevel),
	}
}

// BMR is computed from the goal weight, not the current one.
func BMR(p model.UserProfile) int {
	if !present(p.GoalWeight) || !present(p.Height) || p.Age == nil || *p.Age == 0 || p.Gender == model.GenderUnspecified {
		return FallbackBMR
	}
	base := 10**p.GoalWeight + 6.25**p.Height - 5*float64(*p.Age)
	switch p.Gender {
	case model.GenderMale:
		return round(base + 5)
	case model.GenderFemale:
		return round(base - 161)
	default:
		return round(base)
	}
}

func TDEE(bmr int, level model.ActivityLevel) int {
	if bmr == 0 {
		return 0
	}
	multiplier, ok := level.Multiplier()
	if !ok {
		return 0
	}
	return round(float64(bmr) * multiplier)
}

func GoalCalories(tdee int, currentWeight, goalWeight *float64) int {
	if tdee == 0 || !present(currentWeight) || !present(goalWeight) {
		return 0
	}
	switch {
	case *goalWeight == *currentWeight:
		return tdee
	case *goalWeight > *currentWeight:
		return round(float64(tdee) * surplusFactor)
	default:
		return round(float64(tdee) * deficitFactor)
	}
}

// MacroSplit reserves protein first and splits the rest 40:30 between carbs
// and fats by calories. When protein alone exceeds the budget, carbs and fats
// are zero.
func MacroSplit(goalCalories int, currentWeight *float64, level model.ActivityLevel) Macros {
	if goalCalories == 0 || !present(currentWeight) {
		return Macros{}
	}
	multiplier, ok := level.Multiplier()
	if !ok {
		return Macros{}
	}

	perKg := highActivityProteinPerKg
	if multiplier <= 1.2 {
		perKg = lowActivityProteinPerKg
	}
	proteinGrams := *currentWeight * perKg
	remaining := float64(goalCalories) - proteinGrams*kcalPerGramProtein
	if remaining < 0 {
		return Macros{Protein: round(proteinGrams)}
	}

	totalParts := carbParts + fatParts
	carbCalories := remaining * (carbParts / totalParts)
	fatCalories := remaining * (fatParts / totalParts)
	return Macros{
		Protein: round(proteinGrams),
		Carbs:   round(carbCalories / kcalPerGramCarbs),
		Fats:    round(fatCalories / kcalPerGramFat),
	}
}

func present(v *float64) bool {
	return v != nil && *v != 0
}

func round(v float64) int {
	return int(math.Round(v))
}
