package plan

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/2beens/fitplan/internal/fitness/profile"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGeneratedAt = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

func scenarioProfile() profile.UserProfile {
	return profile.UserProfile{
		Age:           30,
		Sex:           profile.SexMale,
		HeightCM:      170,
		WeightKG:      70,
		FitnessLevel:  profile.LevelBeginner,
		Goal:          profile.GoalWeightLoss,
		ActivityLevel: profile.ActivityModerate,
	}
}

func TestFallback_Scenario(t *testing.T) {
	p := Fallback(scenarioProfile(), testGeneratedAt)

	assert.Equal(t, SourceFallback, p.Source)
	assert.Equal(t, 2007, p.DailyCalories)
	assert.Equal(t, 126, p.ProteinG)
	assert.Equal(t, 56, p.FatG)
	assert.Equal(t, 250, p.CarbsG)
	assert.Equal(t, 2310, p.WaterGoalML)
	assert.Equal(t, 8000, p.StepGoal)
	assert.Equal(t, 3, p.WorkoutGoalPerPeriod)
	assert.Equal(t, testGeneratedAt, p.GeneratedAt)

	require.Len(t, p.WeeklySchedule, 7)
	var days []string
	var burns []int
	for _, e := range p.WeeklySchedule {
		days = append(days, e.Day)
		burns = append(burns, e.EstCalories)
		assert.NotEmpty(t, e.Exercises)
	}
	assert.Equal(t, Weekdays[:], days)
	assert.Equal(t, []int{289, 270, 96, 257, 289, 359, 64}, burns)
	assert.Equal(t, WorkoutHIIT, p.WeeklySchedule[3].WorkoutType)
	assert.Equal(t, 25, p.WeeklySchedule[3].DurationMin)

	assert.NotEmpty(t, p.Recommendations)
}

func TestFallback_Deterministic(t *testing.T) {
	first, err := json.Marshal(Fallback(scenarioProfile(), testGeneratedAt))
	require.NoError(t, err)
	second, err := json.Marshal(Fallback(scenarioProfile(), testGeneratedAt))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// schedules must not share backing arrays between plans
	a := Fallback(scenarioProfile(), testGeneratedAt)
	a.WeeklySchedule[0].Exercises[0] = "changed"
	b := Fallback(scenarioProfile(), testGeneratedAt)
	assert.Equal(t, "Squats", b.WeeklySchedule[0].Exercises[0])
}

func TestFallback_GoalAdjustments(t *testing.T) {
	p := scenarioProfile()

	p.Goal = profile.GoalMuscleGain
	gain := Fallback(p, testGeneratedAt)
	assert.Equal(t, 2807, gain.DailyCalories)
	assert.Equal(t, 154, gain.ProteinG)

	p.Goal = profile.GoalGeneralFitness
	assert.Equal(t, 2507, Fallback(p, testGeneratedAt).DailyCalories)

	p.Goal = profile.GoalEndurance
	endurance := Fallback(p, testGeneratedAt)
	// 5 MET * 70kg * 0.75h * 1.15
	assert.Equal(t, 302, endurance.WeeklySchedule[0].EstCalories)
}

func TestFallback_Levels(t *testing.T) {
	p := scenarioProfile()
	p.FitnessLevel = profile.LevelIntermediate
	plan := Fallback(p, testGeneratedAt)
	assert.Equal(t, 10000, plan.StepGoal)
	assert.Equal(t, 4, plan.WorkoutGoalPerPeriod)

	p.FitnessLevel = profile.LevelAdvanced
	plan = Fallback(p, testGeneratedAt)
	assert.Equal(t, 12000, plan.StepGoal)
	assert.Equal(t, 5, plan.WorkoutGoalPerPeriod)
}

func TestFallback_LowCalorieTargetIsNotRaised(t *testing.T) {
	p := profile.UserProfile{
		Age:           90,
		Sex:           profile.SexFemale,
		HeightCM:      140,
		WeightKG:      38,
		FitnessLevel:  profile.LevelBeginner,
		Goal:          profile.GoalWeightLoss,
		ActivityLevel: profile.ActivitySedentary,
	}
	plan := Fallback(p, testGeneratedAt)

	// bmr 644, tdee 772.8, minus the 500 kcal deficit
	assert.Equal(t, 273, plan.DailyCalories)
	assert.Equal(t, 68, plan.ProteinG)
	assert.Equal(t, 8, plan.FatG)
	assert.Equal(t, 0, plan.CarbsG)
	assert.Contains(t, plan.Recommendations, "Your calorie target is below 1200 kcal; follow it only with guidance from a doctor or dietitian.")

	normal := Fallback(scenarioProfile(), testGeneratedAt)
	for _, rec := range normal.Recommendations {
		assert.NotContains(t, rec, "below 1200 kcal")
	}
}

func TestFallback_HeavyMuscleGainProteinFromWeight(t *testing.T) {
	heavy := profile.UserProfile{
		Age:           70,
		Sex:           profile.SexFemale,
		HeightCM:      100,
		WeightKG:      300,
		FitnessLevel:  profile.LevelBeginner,
		Goal:          profile.GoalMuscleGain,
		ActivityLevel: profile.ActivitySedentary,
	}
	plan := Fallback(heavy, testGeneratedAt)
	assert.Equal(t, 660, plan.ProteinG)
	assert.GreaterOrEqual(t, plan.CarbsG, 0)
}

func TestFallback_MacroInvariant_RandomProfiles(t *testing.T) {
	faker := gofakeit.New(42)
	sexes := []profile.Sex{profile.SexMale, profile.SexFemale, profile.SexOther}
	levels := []profile.FitnessLevel{profile.LevelBeginner, profile.LevelIntermediate, profile.LevelAdvanced}
	goals := []profile.Goal{profile.GoalWeightLoss, profile.GoalMuscleGain, profile.GoalGeneralFitness, profile.GoalEndurance}
	activities := []profile.ActivityLevel{
		profile.ActivitySedentary, profile.ActivityLight, profile.ActivityModerate,
		profile.ActivityActive, profile.ActivityVeryActive,
	}

	for i := 0; i < 500; i++ {
		p := profile.UserProfile{
			Age:           faker.IntRange(13, 100),
			Sex:           sexes[faker.IntRange(0, len(sexes)-1)],
			HeightCM:      faker.IntRange(100, 250),
			WeightKG:      math.Round(faker.Float64Range(30, 300)*10) / 10,
			FitnessLevel:  levels[faker.IntRange(0, len(levels)-1)],
			Goal:          goals[faker.IntRange(0, len(goals)-1)],
			ActivityLevel: activities[faker.IntRange(0, len(activities)-1)],
		}

		plan := Fallback(p, testGeneratedAt)
		require.GreaterOrEqual(t, plan.CarbsG, 0)
		require.GreaterOrEqual(t, plan.FatG, 0)

		// protein follows body weight, it can exceed a very small budget on its own
		if plan.ProteinG*4+plan.FatG*9 > plan.DailyCalories {
			require.Equal(t, 0, plan.CarbsG, "%+v", p)
			continue
		}

		diff := math.Abs(float64(plan.MacroCalories()-plan.DailyCalories)) / float64(plan.DailyCalories)
		require.LessOrEqual(t, diff, 0.05, "macro calories %d vs daily %d for %+v", plan.MacroCalories(), plan.DailyCalories, p)
	}
}

func TestFallback_Recommendations(t *testing.T) {
	p := scenarioProfile()
	p.WeightKG = 95
	p.ActivityLevel = profile.ActivitySedentary
	recs := Fallback(p, testGeneratedAt).Recommendations
	require.Len(t, recs, 4)
	assert.Contains(t, recs[1], "low-impact cardio")
	assert.Contains(t, recs[2], "walk every hour")

	p = scenarioProfile()
	recs = Fallback(p, testGeneratedAt).Recommendations
	require.Len(t, recs, 2)
}

func TestFitnessPlan_EntryFor(t *testing.T) {
	plan := Fallback(scenarioProfile(), testGeneratedAt)

	mon, ok := plan.EntryFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "Monday", mon.Day)

	sun, ok := plan.EntryFor(time.Sunday)
	require.True(t, ok)
	assert.Equal(t, "Sunday", sun.Day)

	_, ok = FitnessPlan{}.EntryFor(time.Monday)
	assert.False(t, ok)
}
