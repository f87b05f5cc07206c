package grit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaldoun36/GritSeason/internal/app"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize grit storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if cfg.Storage == app.StorageMongo {
			session, err := app.Open(cmd.Context(), cfg, log, "")
			if err != nil {
				return err
			}
			defer session.Close(context.Background())
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized grit database %s on %s\n", cfg.MongoDatabase, cfg.MongoURI)
			return nil
		}

		path, err := app.ResolveDBPath(cfg, dbPath)
		if err != nil {
			return err
		}
		sqldb, err := app.OpenSQLite(cfg, path)
		if err != nil {
			return err
		}
		defer sqldb.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized grit database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
