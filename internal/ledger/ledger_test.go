package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/smartbite-go-api/internal/ledger"
)

var noon = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

func mustMeal(t *testing.T, name string, cal int, existing []ledger.Meal, now time.Time) ledger.Meal {
	t.Helper()
	m, err := ledger.NewMeal(ledger.MealInput{Name: name, Calories: cal}, existing, now)
	require.NoError(t, err)
	return m
}

func TestNewMeal_Defaults(t *testing.T) {
	m := mustMeal(t, "  Oatmeal ", 320, nil, noon)

	assert.Equal(t, noon.UnixMilli(), m.ID)
	assert.Equal(t, "Oatmeal", m.Name)
	assert.Equal(t, 320, m.Calories)
	assert.Equal(t, ledger.DefaultPortion, m.Portion)
	assert.Equal(t, ledger.SourceManual, m.Source)
	assert.Equal(t, "12:30 PM", m.Time)
	assert.Equal(t, noon, m.LoggedAt)
}

func TestNewMeal_EstimateKeepsEmptyPortion(t *testing.T) {
	m, err := ledger.NewMeal(ledger.MealInput{Name: "Salad", Calories: 150, Source: ledger.SourceEstimate}, nil, noon)
	require.NoError(t, err)
	assert.Empty(t, m.Portion)
	assert.Equal(t, ledger.SourceEstimate, m.Source)
}

func TestNewMeal_MorningTime(t *testing.T) {
	m := mustMeal(t, "Toast", 90, nil, time.Date(2026, 3, 14, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, "07:05 AM", m.Time)
}

func TestNewMeal_IDsStrictlyIncrease(t *testing.T) {
	first := mustMeal(t, "Apple", 95, nil, noon)
	meals := ledger.Add(nil, first)

	// Same clock reading.
	second := mustMeal(t, "Pear", 100, meals, noon)
	assert.Equal(t, first.ID+1, second.ID)

	// Clock went backwards.
	meals = ledger.Add(meals, second)
	third := mustMeal(t, "Plum", 30, meals, noon.Add(-time.Hour))
	assert.Equal(t, second.ID+1, third.ID)
}

func TestNewMeal_Validation(t *testing.T) {
	cases := []struct {
		name  string
		in    ledger.MealInput
		field string
	}{
		{"blank name", ledger.MealInput{Name: "   ", Calories: 100}, "name"},
		{"negative calories", ledger.MealInput{Name: "Soup", Calories: -1}, "calories"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.NewMeal(tc.in, nil, noon)
			var verr *ledger.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewMeal_ZeroCaloriesAllowed(t *testing.T) {
	m := mustMeal(t, "Black coffee", 0, nil, noon)
	assert.Equal(t, 0, m.Calories)
}

func TestAdd_PrependsWithoutMutating(t *testing.T) {
	a := mustMeal(t, "A", 100, nil, noon)
	orig := []ledger.Meal{a}
	b := mustMeal(t, "B", 200, orig, noon.Add(time.Minute))

	out := ledger.Add(orig, b)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].Name)
	assert.Equal(t, "A", out[1].Name)
	assert.Len(t, orig, 1)
}

func TestRemove(t *testing.T) {
	a := mustMeal(t, "A", 100, nil, noon)
	b := mustMeal(t, "B", 200, []ledger.Meal{a}, noon.Add(time.Minute))
	c := mustMeal(t, "C", 300, []ledger.Meal{a, b}, noon.Add(2*time.Minute))
	meals := []ledger.Meal{c, b, a}

	out, ok := ledger.Remove(meals, b.ID)
	assert.True(t, ok)
	assert.Equal(t, []ledger.Meal{c, a}, out)
	assert.Len(t, meals, 3)

	again, ok := ledger.Remove(out, b.ID)
	assert.False(t, ok)
	assert.Equal(t, out, again)
}

func TestRemove_UnknownIDOnEmptyList(t *testing.T) {
	out, ok := ledger.Remove(nil, 42)
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestAddThenRemoveRestoresTotal(t *testing.T) {
	a := mustMeal(t, "A", 450, nil, noon)
	meals := []ledger.Meal{a}
	before := ledger.Aggregate(meals, 2000)

	extra := mustMeal(t, "Cake", 380, meals, noon.Add(time.Minute))
	meals = ledger.Add(meals, extra)
	assert.Equal(t, 830, ledger.Total(meals))

	meals, _ = ledger.Remove(meals, extra.ID)
	assert.Equal(t, before, ledger.Aggregate(meals, 2000))
}
