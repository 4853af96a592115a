package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lg/smartbite-go-api/internal/session"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and what fits in the remaining budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			sum, err := s.Summary()
			if errors.Is(err, session.ErrNoProfile) {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal: not set. Run: smartbite profile set")
				return nil
			}
			if err != nil {
				return err
			}
			m := sum.Metrics
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Intake: %d / %d kcal (%.0f%%)\n", m.TotalCalories, m.TargetCalories, m.ProgressPercent)
			fmt.Fprintf(out, "Status: %s\n", m.StatusText)
			fmt.Fprintf(out, "Meals logged: %d\n", len(sum.Meals))
			fmt.Fprintln(out, m.DecisionSupport)
			if m.MealEstimate != "" {
				fmt.Fprintln(out, m.MealEstimate)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
