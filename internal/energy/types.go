// Package energy turns biometric inputs into a daily calorie budget plus the
// metabolic and body-composition metrics shown alongside it.
package energy

import "fmt"

// Gender selects the Mifflin-St Jeor constant and the growth table.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// HeightUnit is the unit the user entered their height in. Heights are always
// stored in centimeters; the unit is kept only so clients can echo it back.
type HeightUnit string

const (
	Centimeters HeightUnit = "cm"
	FeetInches  HeightUnit = "ft"
)

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "veryActive"
)

// activityMultipliers maps activity levels to their TDEE multiplier. Also the
// source of truth for which levels are valid.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// ParseActivityLevel accepts the canonical names plus the snake_case spelling
// of veryActive.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	if s == "very_active" {
		return VeryActive, nil
	}
	lvl := ActivityLevel(s)
	if _, ok := activityMultipliers[lvl]; !ok {
		return "", &ValidationError{Field: "activityLevel", Msg: "must be one of: sedentary, light, moderate, active, veryActive"}
	}
	return lvl, nil
}

// Multiplier returns the TDEE multiplier for the level, or 0 if unknown.
func (a ActivityLevel) Multiplier() float64 {
	return activityMultipliers[a]
}

// Goal is the user's weight direction. Each goal adds a fixed offset to TDEE.
type Goal string

const (
	MildLoss Goal = "mildLoss"
	Loss     Goal = "loss"
	Maintain Goal = "maintain"
	MildGain Goal = "mildGain"
	Gain     Goal = "gain"
)

var goalOffsets = map[Goal]int{
	Maintain: 0,
	MildLoss: -250,
	Loss:     -500,
	MildGain: 250,
	Gain:     500,
}

// Offset returns the signed kcal adjustment applied to TDEE for the goal.
func (g Goal) Offset() int {
	return goalOffsets[g]
}

// Valid reports whether g is one of the five known goals.
func (g Goal) Valid() bool {
	_, ok := goalOffsets[g]
	return ok
}

// ParseGoal validates a goal name.
func ParseGoal(s string) (Goal, error) {
	g := Goal(s)
	if !g.Valid() {
		return "", &ValidationError{Field: "goal", Msg: "must be one of: mildLoss, loss, maintain, mildGain, gain"}
	}
	return g, nil
}

// BMICategory is the display classification of a BMI value.
type BMICategory string

const (
	Underweight  BMICategory = "Underweight"
	NormalWeight BMICategory = "Normal Weight"
	Overweight   BMICategory = "Overweight"
	Obese        BMICategory = "Obese"
)

// BiometricInput is what the user types into the profile form.
type BiometricInput struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightUnit    HeightUnit    `json:"heightUnit"`
	HeightCm      float64       `json:"heightCm"`
	Feet          int           `json:"feet"`
	Inches        int           `json:"inches"`
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Profile is the persisted result of Compute. It is replaced wholesale on
// recalculation; only Goal and TargetCalories change in place (SetGoal).
type Profile struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightCm      float64       `json:"heightCm"`
	HeightUnit    HeightUnit    `json:"heightUnit"`
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`

	BMR            int `json:"bmr"`
	TDEE           int `json:"tdee"`
	TargetCalories int `json:"targetCalories"`

	BMI                float64     `json:"bmi"`
	BMICategory        BMICategory `json:"bmiCategory"`
	TargetWeightKg     float64     `json:"targetWeightKg"`
	MinHealthyWeightKg float64     `json:"minHealthyWeightKg"`
	MaxHealthyWeightKg float64     `json:"maxHealthyWeightKg"`
	WeightSuggestion   string      `json:"weightSuggestion"`

	// Only set for minors with an entry in the growth table.
	HeightStatus string `json:"heightStatus,omitempty"`
	HeightAdvice string `json:"heightAdvice,omitempty"`
}

// ValidationError reports a missing or out-of-range input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}
