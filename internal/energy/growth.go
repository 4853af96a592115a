package energy

// Average heights (cm) by age, simplified from WHO growth references.
var averageHeightCm = map[Gender]map[int]float64{
	Male: {
		10: 138, 11: 143, 12: 149, 13: 156, 14: 164, 15: 170, 16: 173, 17: 175, 18: 176,
	},
	Female: {
		10: 138, 11: 144, 12: 151, 13: 157, 14: 160, 15: 162, 16: 163, 17: 163, 18: 163,
	},
}

const heightToleranceCm = 5

const (
	HeightStatusAverage = "Average height for your age"
	HeightStatusTaller  = "Taller than average for your age"
	HeightStatusShorter = "Shorter than average for your age"
)

// AssessHeightForAge compares a minor's height with the average for their age.
// Adults and ages missing from the table return empty strings.
func AssessHeightForAge(g Gender, age int, heightCm float64) (status, advice string) {
	if age >= 18 {
		return "", ""
	}
	avg, ok := averageHeightCm[g][age]
	if !ok {
		return "", ""
	}

	diff := heightCm - avg
	switch {
	case diff > heightToleranceCm:
		return HeightStatusTaller, "Great! You're growing well. Make sure to eat enough protein and calcium."
	case diff < -heightToleranceCm:
		return HeightStatusShorter, "Everyone grows at their own pace! Focus on: protein (eggs, chicken, fish), " +
			"calcium (milk, cheese), vitamin D (sunlight), and good sleep (8-10 hours). " +
			"Consider talking to a doctor if concerned."
	default:
		return HeightStatusAverage, "You're growing well! Keep eating nutritious foods and stay active."
	}
}
