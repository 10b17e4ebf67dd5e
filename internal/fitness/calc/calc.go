// Package calc derives body metrics and targets from a validated profile.
// Everything here is pure: no I/O and no caching.
package calc

import (
	"math"

	"github.com/2beens/fitplan/internal/fitness/profile"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

var activityMultipliers = map[profile.ActivityLevel]float64{
	profile.ActivitySedentary:  1.2,
	profile.ActivityLight:      1.375,
	profile.ActivityModerate:   1.55,
	profile.ActivityActive:     1.725,
	profile.ActivityVeryActive: 1.9,
}

type Zone struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type HeartRateZones struct {
	MaxHR   int  `json:"max_hr"`
	FatBurn Zone `json:"fat_burn"`
	Cardio  Zone `json:"cardio"`
}

type Metrics struct {
	WeightKG    float64        `json:"weight_kg"`
	BMI         float64        `json:"bmi"`
	BMICategory BMICategory    `json:"bmi_category"`
	BMR         float64        `json:"bmr"`
	TDEE        float64        `json:"tdee"`
	HeartRate   HeartRateZones `json:"heart_rate"`
}

// bmiEpsilon absorbs float error for values that sit exactly on a band boundary,
// e.g. 59.94 kg at 180 cm.
const bmiEpsilon = 1e-9

// BMI is unrounded; round only for display.
func BMI(weightKG float64, heightCM int) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := float64(heightCM) / 100
	return weightKG / (m * m)
}

// CategoryFor bands a BMI value; lower bounds are inclusive.
func CategoryFor(bmi float64) BMICategory {
	bmi += bmiEpsilon
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMR uses Mifflin-St Jeor; "other" uses the female constant.
func BMR(weightKG float64, heightCM, age int, sex profile.Sex) float64 {
	base := 10*weightKG + 6.25*float64(heightCM) - 5*float64(age)
	if sex == profile.SexMale {
		return base + 5
	}
	return base - 161
}

func ActivityMultiplier(level profile.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[profile.DefaultActivityLevel]
}

func TDEE(bmr float64, level profile.ActivityLevel) float64 {
	return bmr * ActivityMultiplier(level)
}

func MaxHR(age int) int {
	return 220 - age
}

func Zones(age int) HeartRateZones {
	maxHR := MaxHR(age)
	return HeartRateZones{
		MaxHR: maxHR,
		FatBurn: Zone{
			Low:  percentOfMax(maxHR, 60),
			High: percentOfMax(maxHR, 70),
		},
		Cardio: Zone{
			Low:  percentOfMax(maxHR, 70),
			High: percentOfMax(maxHR, 85),
		},
	}
}

// integer percent keeps e.g. 175*70% at exactly 122.5 before rounding
func percentOfMax(maxHR, pct int) int {
	return int(math.Round(float64(maxHR*pct) / 100))
}

// Compute derives all metrics for p. A non-nil weightOverride (same-day logged weight)
// replaces the profile weight for BMI, BMR and TDEE.
func Compute(p profile.UserProfile, weightOverride *float64) Metrics {
	weight := p.WeightKG
	if weightOverride != nil && *weightOverride > 0 {
		weight = *weightOverride
	}

	bmi := BMI(weight, p.HeightCM)
	bmr := BMR(weight, p.HeightCM, p.Age, p.Sex)
	return Metrics{
		WeightKG:    weight,
		BMI:         round2(bmi),
		BMICategory: CategoryFor(bmi),
		BMR:         bmr,
		TDEE:        TDEE(bmr, p.ActivityLevel),
		HeartRate:   Zones(p.Age),
	}
}

// Percent returns value as a percentage of goal, clamped to [0, 100]. A goal <= 0 yields 0.
func Percent(value, goal float64) float64 {
	if goal <= 0 || math.IsNaN(value) {
		return 0
	}
	pct := value / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
