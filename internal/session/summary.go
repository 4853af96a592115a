package session

import (
	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/ledger"
)

// Summary is the day view: profile, meals and the metrics derived from them.
type Summary struct {
	Profile         energy.Profile `json:"profile"`
	GoalExplanation string         `json:"goalExplanation"`
	Meals           []ledger.Meal  `json:"meals"`
	Metrics         ledger.Metrics `json:"metrics"`
}

// Summary aggregates the meal log against the current calorie budget.
func (s *Session) Summary() (Summary, error) {
	if s.profile == nil {
		return Summary{}, ErrNoProfile
	}
	return Summary{
		Profile:         *s.profile,
		GoalExplanation: energy.GoalExplanation(s.profile.Goal),
		Meals:           s.Meals(),
		Metrics:         ledger.Aggregate(s.meals, s.profile.TargetCalories),
	}, nil
}
