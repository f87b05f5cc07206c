// Package store holds the durable adapters behind the food log and the user
// profile. Both backends keep one record per entry id and a single profile
// record under ProfileKey.
package store

import (
	"context"
	"errors"

	"github.com/khaldoun36/GritSeason/internal/model"
)

// ProfileKey is the fixed identifier of the singleton profile record.
const ProfileKey = 1

var ErrNotFound = errors.New("record not found")

type FoodStore interface {
	// Put inserts the entry or replaces the one with the same id.
	Put(ctx context.Context, entry model.FoodEntry) error
	Get(ctx context.Context, id string) (model.FoodEntry, error)
	// AllByTimestamp returns every entry in ascending timestamp order.
	AllByTimestamp(ctx context.Context) ([]model.FoodEntry, error)
	// Delete removes the entry; deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

type ProfileStore interface {
	// GetProfile returns nil without error when no profile has been saved.
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	PutProfile(ctx context.Context, p model.UserProfile) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
