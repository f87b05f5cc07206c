package grit

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khaldoun36/GritSeason/internal/app"
	"github.com/khaldoun36/GritSeason/internal/estimator"
	"github.com/khaldoun36/GritSeason/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the diary and the nutrition estimation API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if serveAddr != "" {
			cfg.HTTPAddr = serveAddr
		}
		// The server always answers /api/generate itself.
		if err := cfg.RequireOpenAI(); err != nil {
			return err
		}
		est := &estimator.OpenAIClient{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session, err := app.Open(ctx, cfg, log, dbPath)
		if err != nil {
			return err
		}
		defer session.Close(context.Background())

		// A failed load falls back to empty state; requests are only served
		// once both loads have returned.
		if err := session.Load(ctx); err != nil {
			log.Warn("starting with empty state", zap.Error(err))
		}

		srv := server.New(server.Deps{
			Diary:     session.Diary,
			Profile:   session.Profile,
			Profiles:  session.Profiles,
			Estimator: est,
			Ping:      session.Ping,
			Log:       log,
		})
		return srv.Listen(ctx, cfg.HTTPAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default GRIT_HTTP_ADDR or :3000)")
}
