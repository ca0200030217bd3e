package utils

import (
	"errors"
	"math"
)

var ErrImplausibleBody = errors.New("height or weight outside plausible range")

// BMI is a body-mass reading rounded to one decimal.
type BMI struct {
	Value    float64
	Category string
}

var bmiBands = []struct {
	below float64
	label string
}{
	{18.5, "Underweight"},
	{25, "Healthy"},
	{30, "Overweight"},
	{math.Inf(1), "Obese"},
}

// ComputeBMI takes height in centimeters and weight in kilograms.
func ComputeBMI(heightCm, weightKg float64) (BMI, error) {
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return BMI{}, ErrImplausibleBody
	}
	m := heightCm / 100
	v := math.Round(weightKg/(m*m)*10) / 10
	return BMI{Value: v, Category: bmiCategory(v)}, nil
}

func bmiCategory(v float64) string {
	for _, b := range bmiBands {
		if v < b.below {
			return b.label
		}
	}
	return bmiBands[len(bmiBands)-1].label
}
