package grit

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khaldoun36/GritSeason/internal/app"
	"github.com/khaldoun36/GritSeason/internal/model"
)

var (
	logListDate string
	logListJSON bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add, list, and remove food log entries",
}

var logAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Estimate nutrition for a meal description and log it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("description is required")
		}
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			est, err := s.Estimator()
			if err != nil {
				return err
			}
			nutrition, err := est.Estimate(ctx, text)
			if err != nil {
				return fmt.Errorf("estimate nutrition: %w", err)
			}
			entry, err := s.Diary.AddEntry(ctx, nutrition)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %s (%.0f kcal | P %.1fg | C %.1fg | F %.1fg)\n",
				entry.ID, strings.Join(entry.Names, ", "), entry.Calories, entry.Protein, entry.Carbs, entry.Fats)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries for a day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDayOrToday(logListDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			s.Diary.SetSelectedDay(day)
			entries := s.Diary.LogInReverseChrono()
			if logListJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
			}
			return nil
		})
	},
}

var logRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a food log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			if !hasEntry(s.Diary.Entries(), id) {
				return fmt.Errorf("food entry %s not found", id)
			}
			if err := s.Diary.RemoveEntry(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		})
	},
}

func hasEntry(entries []model.FoodEntry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logRmCmd)
	logListCmd.Flags().StringVar(&logListDate, "date", "", "Date YYYY-MM-DD (default today)")
	logListCmd.Flags().BoolVar(&logListJSON, "json", false, "Output JSON")
}
