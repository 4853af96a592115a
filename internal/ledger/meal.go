// Package ledger keeps the day's meal log and derives progress metrics and
// guidance text from it. Everything here is pure: callers own the slice and
// decide when to persist it.
package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Meal sources.
const (
	SourceManual   = "manual"
	SourceEstimate = "estimate"
)

// DefaultPortion is used for manual meals logged without a portion.
const DefaultPortion = "Manual entry"

// timeLayout is the clock display stored with each meal, e.g. "07:45 PM".
const timeLayout = "03:04 PM"

// Meal is one logged food entry.
type Meal struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Portion  string    `json:"portion"`
	Image    string    `json:"image,omitempty"`
	Time     string    `json:"time"`
	LoggedAt time.Time `json:"loggedAt"`
	Source   string    `json:"source"`
}

// MealInput is what a caller provides to log a meal.
type MealInput struct {
	Name     string
	Calories int
	Portion  string
	Image    string
	Source   string
}

// ValidationError reports a rejected meal field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// NewMeal validates in and stamps it with an id and time. IDs are creation
// time in Unix milliseconds, bumped past the largest id in existing so they
// stay unique and increasing when two meals land in the same millisecond.
func NewMeal(in MealInput, existing []Meal, now time.Time) (Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Meal{}, &ValidationError{Field: "name", Msg: "is required"}
	}
	if in.Calories < 0 {
		return Meal{}, &ValidationError{Field: "calories", Msg: "must be >= 0"}
	}

	id := now.UnixMilli()
	if maxID := maxMealID(existing); id <= maxID {
		id = maxID + 1
	}

	source := in.Source
	if source == "" {
		source = SourceManual
	}
	portion := strings.TrimSpace(in.Portion)
	if portion == "" && source == SourceManual {
		portion = DefaultPortion
	}

	return Meal{
		ID:       id,
		Name:     name,
		Calories: in.Calories,
		Portion:  portion,
		Image:    in.Image,
		Time:     now.Format(timeLayout),
		LoggedAt: now,
		Source:   source,
	}, nil
}

// Add returns a new list with meal at the front (most recent first).
func Add(meals []Meal, meal Meal) []Meal {
	out := make([]Meal, 0, len(meals)+1)
	out = append(out, meal)
	return append(out, meals...)
}

// Remove returns a new list without the meal with the given id. An unknown id
// returns the list unchanged and false.
func Remove(meals []Meal, id int64) ([]Meal, bool) {
	for i, m := range meals {
		if m.ID == id {
			out := make([]Meal, 0, len(meals)-1)
			out = append(out, meals[:i]...)
			return append(out, meals[i+1:]...), true
		}
	}
	return meals, false
}

// Total sums the calories of meals.
func Total(meals []Meal) int {
	total := 0
	for _, m := range meals {
		total += m.Calories
	}
	return total
}

func maxMealID(meals []Meal) int64 {
	var hi int64
	for _, m := range meals {
		if m.ID > hi {
			hi = m.ID
		}
	}
	return hi
}
