package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/fitness/profile"
)

type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

type WorkoutType string

const (
	WorkoutStrength WorkoutType = "strength"
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutHIIT     WorkoutType = "hiit"
	WorkoutRecovery WorkoutType = "recovery"
)

var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type ScheduleEntry struct {
	Day         string      `json:"day"`
	WorkoutType WorkoutType `json:"workout_type"`
	DurationMin int         `json:"duration_min"`
	EstCalories int         `json:"est_calories"`
	Exercises   []string    `json:"exercises"`
}

// FitnessPlan is replaced wholesale on regeneration; there is one per user.
type FitnessPlan struct {
	DailyCalories        int             `json:"daily_calories"`
	ProteinG             int             `json:"protein_g"`
	CarbsG               int             `json:"carbs_g"`
	FatG                 int             `json:"fat_g"`
	WaterGoalML          int             `json:"water_goal_ml"`
	StepGoal             int             `json:"step_goal"`
	WorkoutGoalPerPeriod int             `json:"workout_goal_per_period"`
	WeeklySchedule       []ScheduleEntry `json:"weekly_schedule"`
	Recommendations      []string        `json:"recommendations"`
	Source               Source          `json:"source"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// MacroCalories is the energy implied by the macro split.
func (p FitnessPlan) MacroCalories() int {
	return p.ProteinG*4 + p.CarbsG*4 + p.FatG*9
}

// EntryFor returns the schedule entry for the weekday of t, if any.
func (p FitnessPlan) EntryFor(weekday time.Weekday) (ScheduleEntry, bool) {
	// Monday-first schedule
	idx := (int(weekday) + 6) % 7
	if idx >= len(p.WeeklySchedule) {
		return ScheduleEntry{}, false
	}
	return p.WeeklySchedule[idx], true
}

// Writer is the external plan writer (an AI provider). It may be slow, fail, or return garbage.
//
//go:generate mockgen -source=$GOFILE -destination=plan_mocks_test.go -package=plan_test
type Writer interface {
	WritePlan(ctx context.Context, p profile.UserProfile) (*Draft, error)
}

// Draft is what a Writer returns. Pointers distinguish absent fields from zero values.
type Draft struct {
	DailyCalories        *float64     `json:"daily_calories"`
	ProteinG             *float64     `json:"protein_g"`
	CarbsG               *float64     `json:"carbs_g"`
	FatG                 *float64     `json:"fat_g"`
	WaterGoalML          *float64     `json:"water_goal_ml"`
	StepGoal             *float64     `json:"step_goal"`
	WorkoutGoalPerPeriod *float64     `json:"workout_goal_per_period"`
	WeeklySchedule       []DraftEntry `json:"weekly_schedule"`
	Recommendations      []string     `json:"recommendations"`
}

type DraftEntry struct {
	Day         string   `json:"day"`
	WorkoutType string   `json:"workout_type"`
	DurationMin *float64 `json:"duration_min"`
	EstCalories *float64 `json:"est_calories"`
	Exercises   []string `json:"exercises"`
}

// InvariantViolation describes why a writer draft was rejected.
type InvariantViolation struct {
	Field  string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("plan draft invariant violated: %s %s", e.Field, e.Reason)
}
