package energy

import "fmt"

// Healthy BMI band used for the weight targets. Note that the upper edge
// (24.9) is not the Overweight threshold (25); both are kept as-is.
const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

// BMI returns weight / height(m)^2 rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return round1(weightKg / (m * m))
}

// ClassifyBMI maps a BMI to its category. Boundaries are lower-inclusive.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return NormalWeight
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// HealthyWeightRange returns the weights (kg, one decimal) that put someone of
// the given height inside the healthy BMI band.
func HealthyWeightRange(heightCm float64) (minKg, maxKg float64) {
	m2 := (heightCm / 100) * (heightCm / 100)
	return round1(healthyBMIMin * m2), round1(healthyBMIMax * m2)
}

func applyBodyComposition(p *Profile) {
	p.BMI = BMI(p.WeightKg, p.HeightCm)
	p.BMICategory = ClassifyBMI(p.BMI)
	p.MinHealthyWeightKg, p.MaxHealthyWeightKg = HealthyWeightRange(p.HeightCm)

	switch p.BMICategory {
	case Underweight:
		p.TargetWeightKg = p.MinHealthyWeightKg
		p.WeightSuggestion = fmt.Sprintf("Gain %.1f kg to reach healthy BMI (target: %.1f kg)",
			p.MinHealthyWeightKg-p.WeightKg, p.MinHealthyWeightKg)
	case NormalWeight:
		p.TargetWeightKg = p.WeightKg
		p.WeightSuggestion = fmt.Sprintf("You're in the healthy range! Maintain %.1f-%.1f kg",
			p.MinHealthyWeightKg, p.MaxHealthyWeightKg)
	case Overweight:
		p.TargetWeightKg = p.MaxHealthyWeightKg
		p.WeightSuggestion = fmt.Sprintf("Lose %.1f kg to reach healthy BMI (target: %.1f kg)",
			p.WeightKg-p.MaxHealthyWeightKg, p.MaxHealthyWeightKg)
	case Obese:
		p.TargetWeightKg = p.MaxHealthyWeightKg
		p.WeightSuggestion = fmt.Sprintf("Lose %.1f kg to reach healthy BMI (target: %.1f kg). Consider consulting a doctor.",
			p.WeightKg-p.MaxHealthyWeightKg, p.MaxHealthyWeightKg)
	}
}
