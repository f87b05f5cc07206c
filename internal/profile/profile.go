package profile

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/metabolic"
	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/store"
)

// Details is a complete onboarding form.
type Details struct {
	CurrentWeight float64
	GoalWeight    float64
	Height        float64
	Gender        model.Gender
	ActivityLevel model.ActivityLevel
	Age           int
}

func (d Details) Validate() error {
	if d.CurrentWeight <= 0 {
		return fmt.Errorf("current weight must be > 0")
	}
	if d.GoalWeight <= 0 {
		return fmt.Errorf("goal weight must be > 0")
	}
	if d.Height <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if d.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if d.Gender == model.GenderUnspecified {
		return fmt.Errorf("gender is required")
	}
	if d.ActivityLevel == model.ActivityUnspecified {
		return fmt.Errorf("activity level is required")
	}
	return nil
}

func (d Details) profile() model.UserProfile {
	return model.UserProfile{
		CurrentWeight: model.Float(d.CurrentWeight),
		GoalWeight:    model.Float(d.GoalWeight),
		Height:        model.Float(d.Height),
		Gender:        d.Gender,
		ActivityLevel: d.ActivityLevel,
		Age:           model.Int(d.Age),
	}
}

type Profile struct {
	store store.ProfileStore
	log   *zap.Logger

	mu      sync.RWMutex
	current model.UserProfile
	exists  bool
}

func New(s store.ProfileStore, log *zap.Logger) *Profile {
	return &Profile{store: s, log: log.Named("profile")}
}

// Load reads the stored profile. A missing record leaves the profile empty.
func (p *Profile) Load(ctx context.Context) error {
	stored, err := p.store.GetProfile(ctx)
	if err != nil {
		p.log.Error("failed to load user profile", zap.Error(err))
		return fmt.Errorf("load user profile: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if stored == nil {
		p.current = model.UserProfile{}
		p.exists = false
		return nil
	}
	p.current = *stored
	p.exists = true
	return nil
}

// Update replaces the whole profile in memory and then saves it. The
// in-memory copy is kept even when the save fails.
func (p *Profile) Update(ctx context.Context, d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	next := d.profile()

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	if err := p.store.PutProfile(ctx, next); err != nil {
		p.log.Error("failed to save user profile", zap.Error(err))
		return fmt.Errorf("save user profile: %w", err)
	}
	p.mu.Lock()
	p.exists = true
	p.mu.Unlock()
	return nil
}

// Exists reports whether a profile record is known to be stored.
func (p *Profile) Exists() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exists
}

func (p *Profile) Current() model.UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Profile) Metrics() metabolic.Targets {
	return metabolic.Compute(p.Current())
}
