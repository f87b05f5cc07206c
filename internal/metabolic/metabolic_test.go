package metabolic_test

import (
	"math"
	"testing"

	"github.com/khaldoun36/GritSeason/internal/metabolic"
	"github.com/khaldoun36/GritSeason/internal/model"
)

func profile(gender model.Gender) model.UserProfile {
	return model.UserProfile{
		CurrentWeight: model.Float(80),
		GoalWeight:    model.Float(70),
		Height:        model.Float(175),
		Gender:        gender,
		ActivityLevel: model.ActivitySedentary,
		Age:           model.Int(25),
	}
}

func TestBMRMifflinStJeor(t *testing.T) {
	t.Parallel()
	if got := metabolic.BMR(profile(model.GenderMale)); got != 1674 {
		t.Fatalf("expected male BMR 1674, got %d", got)
	}
	if got := metabolic.BMR(profile(model.GenderFemale)); got != 1508 {
		t.Fatalf("expected female BMR 1508, got %d", got)
	}
	// 700 + 1093.75 - 125 = 1668.75
	if got := metabolic.BMR(profile(model.GenderOther)); got != 1669 {
		t.Fatalf("expected unadjusted BMR 1669, got %d", got)
	}
}

func TestBMRFallsBackWhenIncomplete(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*model.UserProfile){
		"goal weight": func(p *model.UserProfile) { p.GoalWeight = nil },
		"height":      func(p *model.UserProfile) { p.Height = nil },
		"age":         func(p *model.UserProfile) { p.Age = nil },
		"zero age":    func(p *model.UserProfile) { p.Age = model.Int(0) },
		"gender":      func(p *model.UserProfile) { p.Gender = model.GenderUnspecified },
	}
	for name, mutate := range cases {
		p := profile(model.GenderMale)
		mutate(&p)
		if got := metabolic.BMR(p); got != metabolic.FallbackBMR {
			t.Fatalf("%s missing: expected fallback %d, got %d", name, metabolic.FallbackBMR, got)
		}
	}
	if got := metabolic.BMR(model.UserProfile{}); got != 100 {
		t.Fatalf("expected empty profile BMR 100, got %d", got)
	}
}

func TestTDEE(t *testing.T) {
	t.Parallel()
	if got := metabolic.TDEE(1674, model.ActivitySedentary); got != 2009 {
		t.Fatalf("expected TDEE 2009, got %d", got)
	}
	if got := metabolic.TDEE(1674, model.ActivityVeryActive); got != 3181 {
		t.Fatalf("expected TDEE 3181, got %d", got)
	}
	if got := metabolic.TDEE(0, model.ActivitySedentary); got != 0 {
		t.Fatalf("expected zero BMR to yield 0, got %d", got)
	}
	if got := metabolic.TDEE(1674, model.ActivityUnspecified); got != 0 {
		t.Fatalf("expected unknown activity to yield 0, got %d", got)
	}
}

func TestGoalCaloriesAdjustsForDirection(t *testing.T) {
	t.Parallel()
	const tdee = 2009
	if got := metabolic.GoalCalories(tdee, model.Float(70), model.Float(75)); got != 2210 {
		t.Fatalf("expected surplus 2210, got %d", got)
	}
	if got := metabolic.GoalCalories(tdee, model.Float(70), model.Float(70)); got != tdee {
		t.Fatalf("expected maintenance %d, got %d", tdee, got)
	}
	if got := metabolic.GoalCalories(tdee, model.Float(80), model.Float(70)); got != 1808 {
		t.Fatalf("expected deficit 1808, got %d", got)
	}
	if got := metabolic.GoalCalories(0, model.Float(80), model.Float(70)); got != 0 {
		t.Fatalf("expected zero tdee to yield 0, got %d", got)
	}
	if got := metabolic.GoalCalories(tdee, nil, model.Float(70)); got != 0 {
		t.Fatalf("expected missing current weight to yield 0, got %d", got)
	}
	if got := metabolic.GoalCalories(tdee, model.Float(80), nil); got != 0 {
		t.Fatalf("expected missing goal weight to yield 0, got %d", got)
	}
}

func TestMacroSplit(t *testing.T) {
	t.Parallel()
	got := metabolic.MacroSplit(2009, model.Float(80), model.ActivitySedentary)
	want := metabolic.Macros{Protein: 96, Carbs: 232, Fats: 77}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	active := metabolic.MacroSplit(2500, model.Float(80), model.ActivityActive)
	if active.Protein != 144 {
		t.Fatalf("expected 1.8 g/kg protein for active profile, got %d", active.Protein)
	}
}

func TestMacroSplitProteinExceedsBudget(t *testing.T) {
	t.Parallel()
	got := metabolic.MacroSplit(1000, model.Float(200), model.ActivityActive)
	want := metabolic.Macros{Protein: 360}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMacroSplitZeroWhenInputsMissing(t *testing.T) {
	t.Parallel()
	if got := metabolic.MacroSplit(0, model.Float(80), model.ActivitySedentary); got != (metabolic.Macros{}) {
		t.Fatalf("expected zero macros without goal calories, got %+v", got)
	}
	if got := metabolic.MacroSplit(2000, nil, model.ActivitySedentary); got != (metabolic.Macros{}) {
		t.Fatalf("expected zero macros without weight, got %+v", got)
	}
	if got := metabolic.MacroSplit(2000, model.Float(80), model.ActivityUnspecified); got != (metabolic.Macros{}) {
		t.Fatalf("expected zero macros without activity, got %+v", got)
	}
}

func TestMacroCaloriesTrackGoalWithinRounding(t *testing.T) {
	t.Parallel()
	// Each gram rounds by at most 0.5: 2 + 2 + 4.5 kcal.
	const tolerance = 8.5
	for _, level := range model.ActivityLevels() {
		for goal := 1200; goal <= 4000; goal += 37 {
			for _, weight := range []float64{55, 68.5, 80, 97.3} {
				m := metabolic.MacroSplit(goal, model.Float(weight), level)
				if m.Carbs == 0 && m.Fats == 0 {
					continue
				}
				kcal := float64(m.Protein*4 + m.Carbs*4 + m.Fats*9)
				if math.Abs(kcal-float64(goal)) > tolerance {
					t.Fatalf("goal %d weight %.1f level %v: macros %+v give %.0f kcal", goal, weight, level.Key(), m, kcal)
				}
			}
		}
	}
}

func TestComputePipeline(t *testing.T) {
	t.Parallel()
	p := profile(model.GenderMale)
	p.CurrentWeight = model.Float(70)
	got := metabolic.Compute(p)
	if got.BMR != 1674 || got.TDEE != 2009 || got.GoalCalories != 2009 {
		t.Fatalf("unexpected targets: %+v", got)
	}
	if got.Macros.Protein != 84 {
		t.Fatalf("expected 84 g protein, got %+v", got.Macros)
	}

	empty := metabolic.Compute(model.UserProfile{})
	if empty.BMR != 100 || empty.TDEE != 0 || empty.GoalCalories != 0 || empty.Macros != (metabolic.Macros{}) {
		t.Fatalf("unexpected fallback targets: %+v", empty)
	}
}
