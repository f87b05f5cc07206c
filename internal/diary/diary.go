// Package diary owns the in-memory food log and its per-day views.
//
// A Diary is loaded once from a store.FoodStore and then kept in sync with it:
// additions are written durably before they become visible, removals become
// visible immediately and are written afterwards without rollback.
package diary

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/store"
)

type DaySummary struct {
	Date     string            `json:"date"`
	DayStart int64             `json:"dayStart"`
	Entries  []model.FoodEntry `json:"entries"`
	Totals   Totals            `json:"totals"`
}

type Diary struct {
	store store.FoodStore
	log   *zap.Logger
	now   func() time.Time
	newID func(time.Time) string

	mu          sync.RWMutex
	entries     []model.FoodEntry
	selectedDay int64
}

type Option func(*Diary)

func WithClock(now func() time.Time) Option {
	return func(d *Diary) { d.now = now }
}

func WithIDGenerator(newID func(time.Time) string) Option {
	return func(d *Diary) { d.newID = newID }
}

func New(s store.FoodStore, log *zap.Logger, opts ...Option) *Diary {
	d := &Diary{
		store:   s,
		log:     log.Named("diary"),
		now:     time.Now,
		newID:   NewEntryID,
		entries: make([]model.FoodEntry, 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.selectedDay = model.StartOfDay(d.now())
	return d
}

// NewEntryID combines the creation time with a random UUID.
func NewEntryID(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + uuid.NewString()
}

// Load replaces the in-memory log with the stored one. On failure the log is
// left empty and the error is returned.
func (d *Diary) Load(ctx context.Context) error {
	entries, err := d.store.AllByTimestamp(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.entries = make([]model.FoodEntry, 0)
		d.log.Error("failed to load food log", zap.Error(err))
		return fmt.Errorf("load food log: %w", err)
	}
	d.entries = entries
	d.log.Debug("food log loaded", zap.Int("entries", len(entries)))
	return nil
}

func (d *Diary) SetSelectedDay(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectedDay = model.StartOfDay(t)
}

func (d *Diary) SelectedDay() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selectedDay
}

func (d *Diary) Entries() []model.FoodEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.FoodEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Diary) EntriesForSelectedDay() []model.FoodEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return SelectDay(d.entries, d.selectedDay)
}

func (d *Diary) LogInReverseChrono() []model.FoodEntry {
	return OrderReverseChronological(d.EntriesForSelectedDay())
}

func (d *Diary) Totals() Totals {
	return AggregateTotals(d.EntriesForSelectedDay())
}

// Day summarizes the calendar day starting at dayStart.
func (d *Diary) Day(dayStart int64) DaySummary {
	d.mu.RLock()
	selected := SelectDay(d.entries, dayStart)
	d.mu.RUnlock()
	return DaySummary{
		Date:     time.UnixMilli(dayStart).Format("2006-01-02"),
		DayStart: dayStart,
		Entries:  OrderReverseChronological(selected),
		Totals:   AggregateTotals(selected),
	}
}

// AddEntry stamps the draft with an id and the current time and persists it.
// The entry joins the in-memory log only after the write succeeds. The lock is
// not held during the write, so a stalled store blocks only this call.
func (d *Diary) AddEntry(ctx context.Context, draft model.Nutrition) (model.FoodEntry, error) {
	if err := validateDraft(draft); err != nil {
		return model.FoodEntry{}, err
	}
	now := d.now()
	names := make([]string, len(draft.Names))
	copy(names, draft.Names)
	entry := model.FoodEntry{
		ID:        d.newID(now),
		Names:     names,
		Calories:  draft.Calories,
		Protein:   draft.Protein,
		Carbs:     draft.Carbs,
		Fats:      draft.Fats,
		Timestamp: now.UnixMilli(),
	}

	d.mu.RLock()
	dup := d.hasID(entry.ID)
	d.mu.RUnlock()
	if dup {
		return model.FoodEntry{}, fmt.Errorf("food entry id %s already exists", entry.ID)
	}

	if err := d.store.Put(ctx, entry); err != nil {
		d.log.Error("failed to save food entry", zap.String("id", entry.ID), zap.Error(err))
		return model.FoodEntry{}, fmt.Errorf("save food entry: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasID(entry.ID) {
		return model.FoodEntry{}, fmt.Errorf("food entry id %s already exists", entry.ID)
	}
	d.entries = append(d.entries, entry)
	return entry, nil
}

// hasID must be called with d.mu held.
func (d *Diary) hasID(id string) bool {
	for _, e := range d.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// RemoveEntry drops the entry from memory, then deletes it durably. A failed
// delete is returned but the in-memory removal stands. Unknown ids are a no-op
// in memory.
func (d *Diary) RemoveEntry(ctx context.Context, id string) error {
	d.mu.Lock()
	kept := d.entries[:0:0]
	for _, e := range d.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	d.entries = kept
	d.mu.Unlock()

	if err := d.store.Delete(ctx, id); err != nil {
		d.log.Error("failed to remove food entry", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("remove food entry %s: %w", id, err)
	}
	return nil
}

func validateDraft(n model.Nutrition) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"calories", n.Calories},
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fats", n.Fats},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must be >= 0", c.name)
		}
	}
	return nil
}
