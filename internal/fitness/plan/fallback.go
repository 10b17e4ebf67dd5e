package plan

import (
	"math"
	"time"

	"github.com/2beens/fitplan/internal/fitness/calc"
	"github.com/2beens/fitplan/internal/fitness/profile"
)

// lowCalorieTarget is the level below which the plan carries a supervision advice.
// The target itself is never raised.
const lowCalorieTarget = 1200

var calorieAdjustments = map[profile.Goal]float64{
	profile.GoalWeightLoss: -500,
	profile.GoalMuscleGain: 300,
}

var stepGoals = map[profile.FitnessLevel]int{
	profile.LevelBeginner:     8000,
	profile.LevelIntermediate: 10000,
	profile.LevelAdvanced:     12000,
}

var workoutsPerWeek = map[profile.FitnessLevel]int{
	profile.LevelBeginner:     3,
	profile.LevelIntermediate: 4,
	profile.LevelAdvanced:     5,
}

var metValues = map[WorkoutType]float64{
	WorkoutStrength: 5,
	WorkoutCardio:   7,
	WorkoutHIIT:     8,
	WorkoutRecovery: 2.5,
}

var goalBurnFactors = map[profile.Goal]float64{
	profile.GoalWeightLoss: 1.10,
	profile.GoalEndurance:  1.15,
}

type templateDay struct {
	workout   WorkoutType
	minutes   int
	exercises []string
}

var weekTemplate = [7]templateDay{
	{workout: WorkoutStrength, minutes: 45, exercises: []string{"Squats", "Push-ups", "Bent-over rows", "Plank"}},
	{workout: WorkoutCardio, minutes: 30, exercises: []string{"Brisk walk or jog", "Cycling intervals"}},
	{workout: WorkoutRecovery, minutes: 30, exercises: []string{"Mobility flow", "Foam rolling", "Light stretching"}},
	{workout: WorkoutHIIT, minutes: 25, exercises: []string{"Burpees", "Mountain climbers", "Jump squats", "High knees"}},
	{workout: WorkoutStrength, minutes: 45, exercises: []string{"Deadlifts", "Overhead press", "Lunges", "Pull-ups"}},
	{workout: WorkoutCardio, minutes: 40, exercises: []string{"Steady-state run", "Rowing"}},
	{workout: WorkoutRecovery, minutes: 20, exercises: []string{"Yoga", "Breathing exercises"}},
}

// Fallback builds the deterministic plan. Same profile and generatedAt always give the same plan.
func Fallback(p profile.UserProfile, generatedAt time.Time) FitnessPlan {
	bmr := calc.BMR(p.WeightKG, p.HeightCM, p.Age, p.Sex)
	tdee := calc.TDEE(bmr, p.ActivityLevel)

	calories := int(math.Round(tdee + calorieAdjustments[p.Goal]))
	protein, carbs, fat := macros(p, calories)

	return FitnessPlan{
		DailyCalories:        calories,
		ProteinG:             protein,
		CarbsG:               carbs,
		FatG:                 fat,
		WaterGoalML:          int(math.Round(p.WeightKG * 33)),
		StepGoal:             lookupOr(stepGoals, p.FitnessLevel, 8000),
		WorkoutGoalPerPeriod: lookupOr(workoutsPerWeek, p.FitnessLevel, 3),
		WeeklySchedule:       schedule(p),
		Recommendations:      recommendations(p, calories),
		Source:               SourceFallback,
		GeneratedAt:          generatedAt.UTC(),
	}
}

// macros splits calories into grams. Carbs take the remainder after protein and fat;
// when protein alone exceeds the budget carbs are 0 and the macro total overshoots.
func macros(p profile.UserProfile, calories int) (protein, carbs, fat int) {
	perKg := 1.8
	if p.Goal == profile.GoalMuscleGain {
		perKg = 2.2
	}
	protein = int(math.Round(p.WeightKG * perKg))
	fat = int(math.Round(0.25 * float64(calories) / 9))
	if fat < 0 {
		fat = 0
	}

	remaining := calories - protein*4 - fat*9
	carbs = int(math.Round(float64(remaining) / 4))
	if carbs < 0 {
		carbs = 0
	}
	return protein, carbs, fat
}

func schedule(p profile.UserProfile) []ScheduleEntry {
	factor := 1.0
	if f, ok := goalBurnFactors[p.Goal]; ok {
		factor = f
	}

	entries := make([]ScheduleEntry, 0, len(weekTemplate))
	for i, day := range weekTemplate {
		hours := float64(day.minutes) / 60
		exercises := make([]string, len(day.exercises))
		copy(exercises, day.exercises)
		entries = append(entries, ScheduleEntry{
			Day:         Weekdays[i],
			WorkoutType: day.workout,
			DurationMin: day.minutes,
			EstCalories: int(math.Round(metValues[day.workout] * p.WeightKG * hours * factor)),
			Exercises:   exercises,
		})
	}
	return entries
}

func recommendations(p profile.UserProfile, calories int) []string {
	bmiCategory := calc.CategoryFor(calc.BMI(p.WeightKG, p.HeightCM))
	var recs []string

	switch p.Goal {
	case profile.GoalWeightLoss:
		recs = append(recs, "Keep a steady 500 kcal daily deficit and prioritise protein at every meal.")
	case profile.GoalMuscleGain:
		recs = append(recs, "Eat in a small surplus and add weight or reps to your strength sessions each week.")
	case profile.GoalEndurance:
		recs = append(recs, "Build cardio volume gradually, no more than 10% per week.")
	default:
		recs = append(recs, "Mix strength and cardio through the week to build all-round fitness.")
	}

	switch bmiCategory {
	case calc.BMIUnderweight:
		recs = append(recs, "Your BMI is below the normal range; focus on nutrient-dense meals and avoid large deficits.")
	case calc.BMIOverweight, calc.BMIObese:
		recs = append(recs, "Favour low-impact cardio such as cycling or swimming to protect your joints.")
	}

	switch p.ActivityLevel {
	case profile.ActivitySedentary, profile.ActivityLight:
		recs = append(recs, "Break up long periods of sitting with a short walk every hour.")
	case profile.ActivityActive, profile.ActivityVeryActive:
		recs = append(recs, "Schedule rest days seriously; recovery is where adaptation happens.")
	}

	if calories < lowCalorieTarget {
		recs = append(recs, "Your calorie target is below 1200 kcal; follow it only with guidance from a doctor or dietitian.")
	}

	recs = append(recs, "Drink water regularly through the day to reach your water goal.")
	return recs
}

func lookupOr[K comparable](m map[K]int, key K, fallback int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
