package grit

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khaldoun36/GritSeason/internal/app"
	"github.com/khaldoun36/GritSeason/internal/diary"
	"github.com/khaldoun36/GritSeason/internal/metabolic"
	"github.com/khaldoun36/GritSeason/internal/model"
)

var (
	todayDate string
	todayJSON bool
)

type todayReport struct {
	Date    string            `json:"date"`
	Entries []model.FoodEntry `json:"entries"`
	Totals  diary.Totals      `json:"totals"`
	Targets metabolic.Targets `json:"targets"`
	Profile bool              `json:"profile"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake against your calorie and macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDayOrToday(todayDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			s.Diary.SetSelectedDay(target)
			report := todayReport{
				Date:    time.UnixMilli(s.Diary.SelectedDay()).Format("2006-01-02"),
				Entries: s.Diary.LogInReverseChrono(),
				Totals:  s.Diary.Totals(),
				Targets: s.Profile.Metrics(),
				Profile: s.Profile.Exists(),
			}
			if todayJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", report.Date)
			fmt.Fprintf(out, "Intake: %.0f kcal\n", report.Totals.Calories)
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", report.Totals.Protein, report.Totals.Carbs, report.Totals.Fats)
			if report.Targets.GoalCalories > 0 {
				m := report.Targets.Macros
				fmt.Fprintf(out, "Goal: %d kcal | P %dg | C %dg | F %dg\n", report.Targets.GoalCalories, m.Protein, m.Carbs, m.Fats)
				fmt.Fprintf(out, "Remaining: %.0f kcal\n", float64(report.Targets.GoalCalories)-report.Totals.Calories)
			} else {
				fmt.Fprintln(out, "Goal: not set (run grit profile set)")
			}
			for _, e := range report.Entries {
				fmt.Fprintln(out, formatEntry(e))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
