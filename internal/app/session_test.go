package app

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/estimator"
	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/profile"
)

func TestSessionLoadRestoresBothAggregates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := &Config{Storage: StorageSQLite, LogFormat: "console"}
	path := filepath.Join(t.TempDir(), "grit.db")

	first, err := Open(ctx, cfg, zap.NewNop(), path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if err := first.Load(ctx); err != nil {
		t.Fatalf("load empty session: %v", err)
	}
	if first.Profile.Exists() {
		t.Fatalf("expected no profile in a fresh database")
	}
	if err := first.Profile.Update(ctx, profile.Details{
		CurrentWeight: 90, GoalWeight: 85, Height: 188,
		Gender: model.GenderMale, ActivityLevel: model.ActivityActive, Age: 40,
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	entry, err := first.Diary.AddEntry(ctx, model.Nutrition{Names: []string{"burrito"}, Calories: 700, Protein: 35, Carbs: 80, Fats: 25})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := first.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := first.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, cfg, zap.NewNop(), path)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}
	defer second.Close(ctx)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load session: %v", err)
	}
	if !second.Profile.Exists() || second.Profile.Metrics().TDEE == 0 {
		t.Fatalf("expected profile to be restored, got %+v", second.Profile.Current())
	}
	got := second.Diary.EntriesForSelectedDay()
	if len(got) != 1 || got[0].ID != entry.ID || got[0].Names[0] != "burrito" {
		t.Fatalf("expected entry to be restored, got %+v", got)
	}
}

func TestNewEstimatorSelection(t *testing.T) {
	t.Parallel()
	if _, err := NewEstimator(&Config{}); err == nil {
		t.Fatalf("expected missing API key to fail")
	}
	e, err := NewEstimator(&Config{EstimatorURL: "http://localhost:3000"})
	if err != nil {
		t.Fatalf("remote estimator: %v", err)
	}
	if _, ok := e.(*estimator.Remote); !ok {
		t.Fatalf("expected remote estimator, got %T", e)
	}
	e, err = NewEstimator(&Config{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("openai estimator: %v", err)
	}
	if c, ok := e.(*estimator.OpenAIClient); !ok || c.Model != "gpt-4o-mini" {
		t.Fatalf("expected configured OpenAI client, got %#v", e)
	}
}
