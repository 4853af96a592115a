package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/session"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Switch your weight goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <goal>",
	Short: "Switch goal (mildLoss, loss, maintain, mildGain, gain) without recalculating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			p, err := s.SetGoal(ctx, energy.Goal(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\nDaily target: %d kcal\n", p.Goal, p.TargetCalories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd)
}
