package ledger

import "fmt"

// Rule is one entry of an ordered guidance list. The first rule whose Match
// returns true supplies the text.
type Rule struct {
	Name  string
	Match func(m Metrics) bool
	Text  func(m Metrics) string
}

// Select evaluates rules top to bottom and returns the first match's text, or
// "" when nothing matches.
func Select(rules []Rule, m Metrics) string {
	for _, r := range rules {
		if r.Match(m) {
			return r.Text(m)
		}
	}
	return ""
}

func always(Metrics) bool { return true }

func fixed(s string) func(Metrics) string {
	return func(Metrics) string { return s }
}

func fmtCal(format string, n int) string {
	return fmt.Sprintf(format, n)
}

// Decision-support rules, in priority order.
var (
	OverTarget = Rule{
		Name:  "over_target",
		Match: func(m Metrics) bool { return m.CaloriesRemaining <= 0 },
		Text:  fixed("Over target: choose lighter options next or add a short walk."),
	}
	RoomForMeal = Rule{
		Name:  "room_for_meal",
		Match: func(m Metrics) bool { return m.CaloriesRemaining >= MealCalories },
		Text:  fixed("Plenty of room: enjoy a balanced meal (~600 cal)."),
	}
	RoomForSnack = Rule{
		Name:  "room_for_snack",
		Match: func(m Metrics) bool { return m.CaloriesRemaining >= SnackCalories },
		Text:  fixed("Good for a light meal or hearty snack (~250-500 cal)."),
	}
	TightMargin = Rule{
		Name:  "tight_margin",
		Match: always,
		Text:  fixed("Tight margin: stick to a light snack (<200 cal)."),
	}

	DecisionRules = []Rule{OverTarget, RoomForMeal, RoomForSnack, TightMargin}
)

// Meal-estimate rules, in priority order.
var (
	MealsOver = Rule{
		Name:  "meals_over",
		Match: func(m Metrics) bool { return m.CaloriesRemaining <= 0 },
		Text: func(m Metrics) string {
			n := max(1, m.OverageMeals)
			noun := "meals"
			if n == 1 {
				noun = "meal"
			}
			return fmt.Sprintf("About %d %s over target; consider a walk or lighter meals.", n, noun)
		},
	}
	SeveralMealsLeft = Rule{
		Name:  "several_meals_left",
		Match: func(m Metrics) bool { return m.MealsRemaining >= 2 },
		Text:  fixed(""),
	}
	OneMealLeft = Rule{
		Name:  "one_meal_left",
		Match: func(m Metrics) bool { return m.MealsRemaining == 1 },
		Text:  fixed("Room for one balanced meal (~600 cal)."),
	}
	LightMealLeft = Rule{
		Name:  "light_meal_left",
		Match: func(m Metrics) bool { return m.CaloriesRemaining > SnackCalories },
		Text:  fixed("Best fit: one light meal or hearty snack (~250-500 cal)."),
	}
	TinyBuffer = Rule{
		Name:  "tiny_buffer",
		Match: always,
		Text: func(m Metrics) string {
			return fmt.Sprintf("Tiny buffer (~%d cal): think fruit or yogurt.", m.CaloriesRemaining)
		},
	}

	MealEstimateRules = []Rule{MealsOver, SeveralMealsLeft, OneMealLeft, LightMealLeft, TinyBuffer}
)
