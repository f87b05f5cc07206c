package grit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/app"
	"github.com/khaldoun36/GritSeason/internal/model"
)

func loadRuntime() (*app.Config, *zap.Logger, error) {
	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// withSession opens the configured storage and loads both aggregates before
// running fn.
func withSession(cmd *cobra.Command, run func(context.Context, *app.Session) error) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := app.Open(ctx, cfg, log, dbPath)
	if err != nil {
		return err
	}
	defer session.Close(context.Background())

	if err := session.Load(ctx); err != nil {
		return err
	}
	return run(ctx, session)
}

func parseDayOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func formatEntry(e model.FoodEntry) string {
	return fmt.Sprintf("%s  %s  %s  %.0f kcal | P %.1fg | C %.1fg | F %.1fg",
		e.Time().Format("15:04"), e.ID, strings.Join(e.Names, ", "), e.Calories, e.Protein, e.Carbs, e.Fats)
}
