package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Calculate and show your calorie budget",
}

var (
	profileAge      int
	profileGender   string
	profileHeightCm float64
	profileFeet     int
	profileInches   int
	profileWeight   float64
	profileActivity string
	profileGoal     string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Calculate your profile from biometrics (replaces the current one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := energy.BiometricInput{
			Age:           profileAge,
			Gender:        energy.Gender(profileGender),
			HeightUnit:    energy.Centimeters,
			HeightCm:      profileHeightCm,
			WeightKg:      profileWeight,
			ActivityLevel: energy.ActivityLevel(profileActivity),
			Goal:          energy.Goal(profileGoal),
		}
		if cmd.Flags().Changed("feet") {
			in.HeightUnit = energy.FeetInches
			in.Feet = profileFeet
			in.Inches = profileInches
		}
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			p, err := s.Recalculate(ctx, in)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			p := s.Profile()
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Run: smartbite profile set")
				return nil
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

func printProfile(w io.Writer, p *energy.Profile) {
	fmt.Fprintf(w, "Daily target: %d kcal (%s)\n", p.TargetCalories, p.Goal)
	fmt.Fprintf(w, "%s\n", energy.GoalExplanation(p.Goal))
	fmt.Fprintf(w, "BMR: %d kcal | TDEE: %d kcal\n", p.BMR, p.TDEE)
	fmt.Fprintf(w, "BMI: %.1f (%s)\n", p.BMI, p.BMICategory)
	fmt.Fprintf(w, "Healthy weight: %.1f-%.1f kg\n", p.MinHealthyWeightKg, p.MaxHealthyWeightKg)
	fmt.Fprintf(w, "%s\n", p.WeightSuggestion)
	if p.HeightStatus != "" {
		fmt.Fprintf(w, "Height: %s. %s\n", p.HeightStatus, p.HeightAdvice)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	f := profileSetCmd.Flags()
	f.IntVar(&profileAge, "age", 0, "Age in years")
	f.StringVar(&profileGender, "gender", "", "male or female")
	f.Float64Var(&profileHeightCm, "height-cm", 0, "Height in centimeters")
	f.IntVar(&profileFeet, "feet", 0, "Height, feet part (use with --inches instead of --height-cm)")
	f.IntVar(&profileInches, "inches", 0, "Height, inches part")
	f.Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	f.StringVar(&profileActivity, "activity", string(energy.Moderate), "sedentary, light, moderate, active or veryActive")
	f.StringVar(&profileGoal, "goal", string(energy.Maintain), "mildLoss, loss, maintain, mildGain or gain")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("gender")
	_ = profileSetCmd.MarkFlagRequired("weight")
	profileSetCmd.MarkFlagsMutuallyExclusive("height-cm", "feet")
}
