// Package gate decides whether a navigation must be redirected to or away
// from onboarding, based on whether a user profile has been stored.
package gate

import (
	"context"

	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/store"
)

const (
	OnboardingPath = "/onboarding"
	HomePath       = "/"
)

// Decide returns the redirect target for a navigation to path, and false when
// the navigation may proceed. A failed profile read is treated like a missing
// profile.
func Decide(path string, hasProfile bool, readErr error) (string, bool) {
	if readErr != nil || !hasProfile {
		if path != OnboardingPath {
			return OnboardingPath, true
		}
		return "", false
	}
	if path == OnboardingPath {
		return HomePath, true
	}
	return "", false
}

// Check reads the profile store and applies Decide.
func Check(ctx context.Context, s store.ProfileStore, log *zap.Logger, path string) (string, bool) {
	p, err := s.GetProfile(ctx)
	if err != nil {
		log.Error("error checking user data", zap.String("path", path), zap.Error(err))
	}
	return Decide(path, p != nil, err)
}
