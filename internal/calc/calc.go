// ABOUTME: Derived health metrics computed from raw daily entries.
// ABOUTME: BMI, hydration target, and weight-loss goal progress; all pure functions.
package calc

import "math"

// WaterLitersPerKg is the daily hydration factor applied to body weight.
const WaterLitersPerKg = 0.035

// BMI returns body-mass index for a weight in kilograms and a height in
// centimeters, rounded to two decimals. ok is false when either input is
// missing (zero or negative); callers must treat that as "not displayable".
func BMI(weight, heightCM float64) (bmi float64, ok bool) {
	if weight <= 0 || heightCM <= 0 {
		return 0, false
	}
	heightM := heightCM / 100
	return Round2(weight / (heightM * heightM)), true
}

// WaterTarget returns the recommended daily water intake in liters.
// Zero weight yields zero.
func WaterTarget(weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return Round2(weight * WaterLitersPerKg)
}

// GoalProgressPercent reports how much of the planned weight loss has been
// achieved, clamped to [0, 100]. A zero planned loss is defined as 0%.
func GoalProgressPercent(firstWeight, latestWeight, targetWeight float64) float64 {
	planned := firstWeight - targetWeight
	if planned == 0 {
		return 0
	}
	pct := 100 * (firstWeight - latestWeight) / planned
	return Round2(clamp(pct, 0, 100))
}

// BMICategory maps a BMI value to its WHO band.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// CMToInches converts centimeters to inches.
func CMToInches(cm float64) float64 {
	return cm / 2.54
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
