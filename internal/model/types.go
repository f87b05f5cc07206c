package model

import "time"

// DayMillis is the width of one calendar-day window minus one millisecond.
const DayMillis int64 = 24*60*60*1000 - 1

type Nutrition struct {
	Names    []string `json:"names"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fats     float64  `json:"fats"`
}

type FoodEntry struct {
	ID        string   `json:"id"`
	Names     []string `json:"names"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fats      float64  `json:"fats"`
	Timestamp int64    `json:"timestamp"`
}

func (e FoodEntry) Nutrition() Nutrition {
	names := make([]string, len(e.Names))
	copy(names, e.Names)
	return Nutrition{Names: names, Calories: e.Calories, Protein: e.Protein, Carbs: e.Carbs, Fats: e.Fats}
}

func (e FoodEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// StartOfDay returns local midnight of t's calendar day in milliseconds.
func StartOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).UnixMilli()
}

type UserProfile struct {
	CurrentWeight *float64      `json:"currentWeight"`
	GoalWeight    *float64      `json:"goalWeight"`
	Height        *float64      `json:"height"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Age           *int          `json:"age"`
}

// Complete reports whether every field has been populated.
func (p UserProfile) Complete() bool {
	return p.CurrentWeight != nil && p.GoalWeight != nil && p.Height != nil &&
		p.Age != nil && p.Gender != GenderUnspecified && p.ActivityLevel != ActivityUnspecified
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
