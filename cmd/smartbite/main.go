// Command smartbite is a local calorie tracker: calculate a daily budget from
// your biometrics, log meals by hand or from a photo, and check the day.
// Data lives in a SQLite file (see --db).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "smartbite",
	Short:         "smartbite tracks your daily calorie budget from the terminal",
	Long:          "smartbite calculates a calorie budget from your biometrics and tracks meals against it, with optional photo-based calorie estimates.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default under your config dir)")
}
