package diary

import (
	"sort"

	"github.com/khaldoun36/GritSeason/internal/model"
)

type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// SelectDay keeps entries whose timestamp lies in [dayStart, dayStart+DayMillis].
func SelectDay(log []model.FoodEntry, dayStart int64) []model.FoodEntry {
	end := dayStart + model.DayMillis
	out := make([]model.FoodEntry, 0)
	for _, e := range log {
		if e.Timestamp >= dayStart && e.Timestamp <= end {
			out = append(out, e)
		}
	}
	return out
}

// OrderReverseChronological returns a newest-first copy; equal timestamps keep
// their input order.
func OrderReverseChronological(entries []model.FoodEntry) []model.FoodEntry {
	out := make([]model.FoodEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func AggregateTotals(entries []model.FoodEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fats += e.Fats
	}
	return t
}
