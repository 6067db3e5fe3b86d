// Package prediction turns raw biometric inputs into a classifier verdict:
// feature assembly, standardized model invocation, and the rule table that
// maps the three-class output onto the six result identifiers the app
// understands.
package prediction

import "github.com/dreamguard-id/DreamGuard/internal"

// BMICategory derives the body-mass-index ordinal used as a model feature:
// 1 normal (BMI <= 24.9), 2 overweight (<= 29.9), 3 obese. Boundary values
// fall into the lower category.
func BMICategory(weightKg, heightCm int) int {
	heightM := float64(heightCm) / 100
	bmi := float64(weightKg) / (heightM * heightM)
	switch {
	case bmi <= 24.9:
		return 1
	case bmi <= 29.9:
		return 2
	default:
		return 3
	}
}

// FeatureVector assembles the 12-element input row for the classifier.
// The column order is fixed: the model was trained on exactly this layout,
// so it must never be reordered.
func FeatureVector(in internal.PredictionInput) []float64 {
	return []float64{
		float64(in.Gender),
		float64(in.Age),
		float64(in.Occupation),
		in.SleepDuration,
		float64(in.SleepQuality),
		float64(in.ActivityLevel),
		float64(in.StressLevel),
		float64(BMICategory(in.Weight, in.Height)),
		float64(in.HeartRate),
		float64(in.DailySteps),
		float64(in.Systolic),
		float64(in.Diastolic),
	}
}
