package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khaldoun36/GritSeason/internal/db"
	"github.com/khaldoun36/GritSeason/internal/diary"
	"github.com/khaldoun36/GritSeason/internal/estimator"
	"github.com/khaldoun36/GritSeason/internal/profile"
	"github.com/khaldoun36/GritSeason/internal/store"
)

// Session owns the two aggregates and the storage behind them for the
// lifetime of one process.
type Session struct {
	Config   *Config
	Log      *zap.Logger
	Foods    store.FoodStore
	Profiles store.ProfileStore
	Diary    *diary.Diary
	Profile  *profile.Profile

	pingers []store.Pinger
	close   func(context.Context) error
}

// Open connects the configured backend. dbPath overrides the configured
// SQLite path when non-empty.
func Open(ctx context.Context, cfg *Config, log *zap.Logger, dbPath string) (*Session, error) {
	s := &Session{Config: cfg, Log: log}
	switch cfg.Storage {
	case StorageMongo:
		m, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			return nil, err
		}
		s.Foods, s.Profiles = m, m
		s.pingers = []store.Pinger{m}
		s.close = m.Disconnect
	default:
		sqldb, err := OpenSQLite(cfg, dbPath)
		if err != nil {
			return nil, err
		}
		lite := store.NewSQLite(sqldb)
		s.Foods, s.Profiles = lite, lite
		s.pingers = []store.Pinger{lite}
		s.close = func(context.Context) error { return sqldb.Close() }
	}
	s.Diary = diary.New(s.Foods, log)
	s.Profile = profile.New(s.Profiles, log)
	return s, nil
}

// OpenSQLite opens and migrates the SQLite database.
func OpenSQLite(cfg *Config, override string) (*sql.DB, error) {
	path, err := ResolveDBPath(cfg, override)
	if err != nil {
		return nil, err
	}
	if err := EnsureDBDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func ResolveDBPath(cfg *Config, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return DefaultDBPath()
}

// Load reads the profile and the food log concurrently and returns once both
// are done. Each aggregate falls back to an empty state on failure.
func (s *Session) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Profile.Load(ctx) })
	g.Go(func() error { return s.Diary.Load(ctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return nil
}

func (s *Session) Ping(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range s.pingers {
		p := p
		g.Go(func() error { return p.Ping(ctx) })
	}
	return g.Wait()
}

func (s *Session) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Estimator prefers a remote grit server when one is configured and calls
// OpenAI directly otherwise.
func (s *Session) Estimator() (estimator.Estimator, error) {
	return NewEstimator(s.Config)
}

func NewEstimator(cfg *Config) (estimator.Estimator, error) {
	if cfg.EstimatorURL != "" {
		return &estimator.Remote{BaseURL: cfg.EstimatorURL}, nil
	}
	if err := cfg.RequireOpenAI(); err != nil {
		return nil, err
	}
	return &estimator.OpenAIClient{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	}, nil
}
