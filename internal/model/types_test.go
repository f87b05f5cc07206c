package model

import (
	"testing"
	"time"
)

func TestStartOfDayNormalizesToLocalMidnight(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 2, 20, 17, 45, 12, 999, time.Local)
	got := StartOfDay(at)
	want := time.Date(2026, 2, 20, 0, 0, 0, 0, time.Local).UnixMilli()
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
	if StartOfDay(time.UnixMilli(got)) != got {
		t.Fatalf("expected StartOfDay to be idempotent")
	}
}

func TestFoodEntryNutritionCopiesNames(t *testing.T) {
	t.Parallel()
	e := FoodEntry{ID: "a", Names: []string{"2 eggs"}, Calories: 140}
	n := e.Nutrition()
	n.Names[0] = "changed"
	if e.Names[0] != "2 eggs" {
		t.Fatalf("expected entry names to be untouched, got %v", e.Names)
	}
}
