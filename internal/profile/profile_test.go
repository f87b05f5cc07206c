package profile_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/profile"
)

type fakeProfileStore struct {
	stored *model.UserProfile
	getErr error
	putErr error
	puts   int
}

func (s *fakeProfileStore) GetProfile(context.Context) (*model.UserProfile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.stored, nil
}

func (s *fakeProfileStore) PutProfile(_ context.Context, p model.UserProfile) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.stored = &p
	return nil
}

func validDetails() profile.Details {
	return profile.Details{
		CurrentWeight: 80,
		GoalWeight:    70,
		Height:        175,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivitySedentary,
		Age:           25,
	}
}

func TestLoadWithoutRecordLeavesProfileIncomplete(t *testing.T) {
	t.Parallel()
	p := profile.New(&fakeProfileStore{}, zap.NewNop())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Exists() {
		t.Fatalf("expected no profile")
	}
	m := p.Metrics()
	if m.BMR != 100 || m.TDEE != 0 || m.GoalCalories != 0 {
		t.Fatalf("unexpected fallback metrics: %+v", m)
	}
}

func TestLoadReportsReadFailure(t *testing.T) {
	t.Parallel()
	p := profile.New(&fakeProfileStore{getErr: errors.New("boom")}, zap.NewNop())
	if err := p.Load(context.Background()); err == nil {
		t.Fatalf("expected read failure")
	}
	if p.Exists() {
		t.Fatalf("expected no profile after failure")
	}
}

func TestUpdateSavesWholesaleAndComputesMetrics(t *testing.T) {
	t.Parallel()
	s := &fakeProfileStore{}
	p := profile.New(s, zap.NewNop())
	if err := p.Update(context.Background(), validDetails()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !p.Exists() || s.stored == nil || !s.stored.Complete() {
		t.Fatalf("expected complete profile to be stored, got %+v", s.stored)
	}
	m := p.Metrics()
	if m.BMR != 1674 || m.TDEE != 2009 || m.GoalCalories != 1808 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestUpdateKeepsMemoryWhenSaveFails(t *testing.T) {
	t.Parallel()
	s := &fakeProfileStore{putErr: errors.New("read-only")}
	p := profile.New(s, zap.NewNop())
	if err := p.Update(context.Background(), validDetails()); err == nil {
		t.Fatalf("expected save failure")
	}
	if got := p.Current(); got.Age == nil || *got.Age != 25 {
		t.Fatalf("expected in-memory profile to be updated, got %+v", got)
	}
	if p.Exists() {
		t.Fatalf("expected profile to be reported as not stored")
	}
}

func TestUpdateRejectsMissingFields(t *testing.T) {
	t.Parallel()
	s := &fakeProfileStore{}
	p := profile.New(s, zap.NewNop())
	d := validDetails()
	d.ActivityLevel = model.ActivityUnspecified
	if err := p.Update(context.Background(), d); err == nil {
		t.Fatalf("expected missing activity level to fail")
	}
	if s.puts != 0 {
		t.Fatalf("expected no write for invalid details")
	}
}
