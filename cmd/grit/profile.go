package grit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaldoun36/GritSeason/internal/app"
	"github.com/khaldoun36/GritSeason/internal/model"
	"github.com/khaldoun36/GritSeason/internal/profile"
)

var (
	profileCurrentWeight float64
	profileGoalWeight    float64
	profileHeight        float64
	profileGender        string
	profileActivity      string
	profileAge           int
	profileShowJSON      bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your body profile and targets",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := model.ParseActivityLevel(profileActivity)
		if err != nil {
			return err
		}
		gender := model.GenderUnspecified
		if profileGender != "" {
			gender = model.ParseGender(profileGender)
		}
		details := profile.Details{
			CurrentWeight: profileCurrentWeight,
			GoalWeight:    profileGoalWeight,
			Height:        profileHeight,
			Gender:        gender,
			ActivityLevel: level,
			Age:           profileAge,
		}
		if err := details.Validate(); err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			if err := s.Profile.Update(ctx, details); err != nil {
				return err
			}
			printTargets(cmd, s.Profile)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and derived targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *app.Session) error {
			if profileShowJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"exists":  s.Profile.Exists(),
					"profile": s.Profile.Current(),
					"targets": s.Profile.Metrics(),
				})
			}
			p := s.Profile.Current()
			if !s.Profile.Exists() || !p.Complete() {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile: not set (run grit profile set)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg (goal %.1f kg)\n", *p.CurrentWeight, *p.GoalWeight)
			fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm | Age: %d | Gender: %s\n", *p.Height, *p.Age, p.Gender)
			fmt.Fprintf(cmd.OutOrStdout(), "Activity: %s\n", p.ActivityLevel)
			printTargets(cmd, s.Profile)
			return nil
		})
	},
}

func printTargets(cmd *cobra.Command, p *profile.Profile) {
	t := p.Metrics()
	fmt.Fprintf(cmd.OutOrStdout(), "BMR: %d kcal | TDEE: %d kcal | Goal: %d kcal\n", t.BMR, t.TDEE, t.GoalCalories)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", t.Macros.Protein, t.Macros.Carbs, t.Macros.Fats)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().Float64Var(&profileCurrentWeight, "current-weight", 0, "Current weight in kg")
	profileSetCmd.Flags().Float64Var(&profileGoalWeight, "goal-weight", 0, "Goal weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male, female, or other")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity: sedentary, light, moderate, active, very-active")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")

	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output JSON")
}
