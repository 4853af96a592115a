package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lg/smartbite-go-api/internal/ledger"
	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/vision"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log, list and remove meals",
}

var (
	mealName     string
	mealCalories int
	mealPortion  string
	mealImage    string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal with known calories",
	RunE: func(cmd *cobra.Command, args []string) error {
		var photo *vision.Image
		if mealImage != "" {
			img, err := readPhoto(mealImage)
			if err != nil {
				return err
			}
			photo = &img
		}
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			in := ledger.MealInput{
				Name:     mealName,
				Calories: mealCalories,
				Portion:  mealPortion,
				Source:   ledger.SourceManual,
			}
			var m ledger.Meal
			var err error
			if photo != nil {
				m, err = s.AddMealWithPhoto(ctx, in, *photo)
			} else {
				m, err = s.AddMeal(ctx, in)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d: %s (%d kcal)\n", m.ID, m.Name, m.Calories)
			return nil
		})
	},
}

var mealEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a meal's calories from a photo and log it",
	Long:  "Sends the photo to an OpenAI vision model. Uses OPENAI_API_KEY, OPENAI_BASE_URL and OPENAI_MODEL from the environment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readPhoto(mealImage)
		if err != nil {
			return err
		}
		est := vision.NewOpenAI(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"))

		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			m, err := s.AddEstimatedMeal(ctx, est, img, mealName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d: %s (%d kcal, %s)\n", m.ID, m.Name, m.Calories, m.Portion)
			return nil
		})
	},
}

var mealRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMealID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			removed, err := s.RemoveMeal(ctx, id)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed meal %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No meal %d\n", id)
			}
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tKCAL\tNAME\tPORTION")
			for _, m := range s.Meals() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%s\t%s\n", m.ID, m.Time, m.Calories, m.Name, m.Portion)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealEstimateCmd, mealRmCmd, mealListCmd)

	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Food name")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories (kcal)")
	mealAddCmd.Flags().StringVar(&mealPortion, "portion", "", "Portion description")
	mealAddCmd.Flags().StringVar(&mealImage, "image", "", "Optional path to a photo of the meal")
	_ = mealAddCmd.MarkFlagRequired("name")
	_ = mealAddCmd.MarkFlagRequired("calories")

	mealEstimateCmd.Flags().StringVar(&mealName, "name", "", "Food name")
	mealEstimateCmd.Flags().StringVar(&mealImage, "image", "", "Path to a photo of the meal")
	_ = mealEstimateCmd.MarkFlagRequired("name")
	_ = mealEstimateCmd.MarkFlagRequired("image")
}

// readPhoto loads an image file for a meal.
func readPhoto(path string) (vision.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vision.Image{}, fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return vision.Image{}, fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return vision.Image{Data: data, MIMEType: mime}, nil
}
