package energy

import (
	"fmt"
	"math"
)

const cmPerInch = 2.54

// HeightFromFeet converts feet + inches to centimeters.
func HeightFromFeet(feet, inches int) float64 {
	return float64(feet*12+inches) * cmPerInch
}

// Compute validates in and derives a full Profile from it: BMR
// (Mifflin-St Jeor), TDEE, the goal-adjusted calorie budget, BMI with its
// healthy-weight band and, for minors, a height-for-age assessment.
func Compute(in BiometricInput) (*Profile, error) {
	heightCm, err := validate(&in)
	if err != nil {
		return nil, err
	}

	bmr := BMR(in.Gender, in.WeightKg, heightCm, in.Age)
	tdee := roundHalfUp(bmr * in.ActivityLevel.Multiplier())

	unit := in.HeightUnit
	if unit == "" {
		unit = Centimeters
	}
	p := &Profile{
		Age:            in.Age,
		Gender:         in.Gender,
		HeightCm:       heightCm,
		HeightUnit:     unit,
		WeightKg:       in.WeightKg,
		ActivityLevel:  in.ActivityLevel,
		Goal:           in.Goal,
		BMR:            roundHalfUp(bmr),
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, in.Goal),
	}

	applyBodyComposition(p)
	p.HeightStatus, p.HeightAdvice = AssessHeightForAge(in.Gender, in.Age, heightCm)
	return p, nil
}

// BMR is the unrounded Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(g Gender, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if g == Male {
		return bmr + 5
	}
	return bmr - 161
}

// TargetCalories applies the goal offset to tdee.
func TargetCalories(tdee int, g Goal) int {
	return roundHalfUp(float64(tdee + g.Offset()))
}

// SetGoal is the quick goal toggle: it swaps the goal and recomputes only the
// calorie budget. Every other field stays as computed.
func (p *Profile) SetGoal(g Goal) error {
	if !g.Valid() {
		return &ValidationError{Field: "goal", Msg: "must be one of: mildLoss, loss, maintain, mildGain, gain"}
	}
	p.Goal = g
	p.TargetCalories = TargetCalories(p.TDEE, g)
	return nil
}

// GoalExplanation describes how the calorie budget relates to the goal.
func GoalExplanation(g Goal) string {
	switch g {
	case Maintain:
		return "Based on your goal to maintain current weight"
	case MildLoss:
		return "Calculated to help you lose ~0.25 kg/week"
	case Loss:
		return "Calculated to help you lose ~0.5 kg/week"
	case MildGain:
		return "Calculated to help you gain ~0.25 kg/week"
	case Gain:
		return "Calculated to help you gain ~0.5 kg/week"
	}
	return ""
}

// validate checks in and normalises its activity level spelling. It returns
// the height in centimeters.
func validate(in *BiometricInput) (float64, error) {
	if in.Age <= 0 {
		return 0, &ValidationError{Field: "age", Msg: "is required and must be > 0"}
	}
	if !finite(in.WeightKg) || in.WeightKg <= 0 {
		return 0, &ValidationError{Field: "weightKg", Msg: "is required and must be > 0"}
	}
	if in.Gender != Male && in.Gender != Female {
		return 0, &ValidationError{Field: "gender", Msg: "must be male or female"}
	}
	lvl, err := ParseActivityLevel(string(in.ActivityLevel))
	if err != nil {
		return 0, err
	}
	in.ActivityLevel = lvl
	if !in.Goal.Valid() {
		return 0, &ValidationError{Field: "goal", Msg: "must be one of: mildLoss, loss, maintain, mildGain, gain"}
	}

	switch in.HeightUnit {
	case FeetInches:
		if in.Feet <= 0 {
			return 0, &ValidationError{Field: "feet", Msg: "is required when heightUnit is ft"}
		}
		if in.Inches < 0 {
			return 0, &ValidationError{Field: "inches", Msg: "must be >= 0"}
		}
		return HeightFromFeet(in.Feet, in.Inches), nil
	case Centimeters, "":
		if !finite(in.HeightCm) || in.HeightCm <= 0 {
			return 0, &ValidationError{Field: "heightCm", Msg: "is required when heightUnit is cm"}
		}
		return in.HeightCm, nil
	default:
		return 0, &ValidationError{Field: "heightUnit", Msg: fmt.Sprintf("unknown unit %q (expected cm or ft)", in.HeightUnit)}
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// roundHalfUp rounds .5 toward +Inf, unlike math.Round which rounds away
// from zero.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
