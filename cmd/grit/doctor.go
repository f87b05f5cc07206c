package grit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaldoun36/GritSeason/internal/app"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check storage reachability and profile completeness",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			out := cmd.OutOrStdout()
			if err := s.Ping(ctx); err != nil {
				fmt.Fprintf(out, "Storage (%s): unreachable\n", s.Config.Storage)
				return fmt.Errorf("doctor found issues: %w", err)
			}
			fmt.Fprintf(out, "Storage (%s): ok\n", s.Config.Storage)
			fmt.Fprintf(out, "Food entries: %d\n", len(s.Diary.Entries()))

			if !s.Profile.Exists() || !s.Profile.Current().Complete() {
				fmt.Fprintln(out, "Profile: incomplete")
				return fmt.Errorf("doctor found issues: profile is not set")
			}
			fmt.Fprintln(out, "Profile: complete")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
