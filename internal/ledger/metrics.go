package ledger

import "math"

// Reference portion sizes the guidance is phrased in.
const (
	MealCalories  = 600
	SnackCalories = 250
)

// Progress statuses.
const (
	StatusOnTrack = "on_track"
	StatusClose   = "close"
	StatusOver    = "over"
)

// Metrics is derived from the meal log and the calorie budget on every read.
// It is never persisted.
type Metrics struct {
	TotalCalories     int     `json:"totalCalories"`
	TargetCalories    int     `json:"targetCalories"`
	CaloriesRemaining int     `json:"caloriesRemaining"`
	ProgressPercent   float64 `json:"progressPercent"`
	MealsRemaining    int     `json:"mealsRemaining"`
	OverageMeals      int     `json:"overageMeals"`
	DecisionSupport   string  `json:"decisionSupport"`
	MealEstimate      string  `json:"mealEstimate"`
	Status            string  `json:"status"`
	StatusText        string  `json:"statusText"`
}

// Aggregate derives Metrics for meals against targetCalories.
func Aggregate(meals []Meal, targetCalories int) Metrics {
	total := Total(meals)
	remaining := targetCalories - total

	m := Metrics{
		TotalCalories:     total,
		TargetCalories:    targetCalories,
		CaloriesRemaining: remaining,
		ProgressPercent:   progressPercent(total, targetCalories),
	}
	if remaining > 0 {
		m.MealsRemaining = remaining / MealCalories
	} else {
		m.OverageMeals = int(math.Ceil(float64(-remaining) / MealCalories))
	}

	m.DecisionSupport = Select(DecisionRules, m)
	m.MealEstimate = Select(MealEstimateRules, m)
	m.Status, m.StatusText = progressStatus(total, targetCalories)
	return m
}

func progressPercent(total, target int) float64 {
	if target <= 0 {
		return 0
	}
	pct := float64(total) / float64(target) * 100
	return math.Max(0, math.Min(100, pct))
}

// progressStatus flags the day as over, close (80% of the budget used) or
// on track.
func progressStatus(total, target int) (string, string) {
	switch {
	case total > target:
		return StatusOver, fmtCal("Over by %d cal", total-target)
	case total*5 >= target*4:
		return StatusClose, fmtCal("Close to limit (%d cal remaining)", target-total)
	default:
		return StatusOnTrack, fmtCal("%d cal remaining", target-total)
	}
}
