package progress

import (
	"github.com/2beens/fitplan/pkg"
)

type State string

const (
	StateNoRecordToday State = "no_record_today"
	StateRecordOpen    State = "record_open"
)

// StateOf tells whether latest is today's open record.
func StateOf(latest *DailyProgress, today pkg.Date) State {
	if latest != nil && latest.Date.Equal(today) {
		return StateRecordOpen
	}
	return StateNoRecordToday
}

type Result struct {
	Progress DailyProgress
	Streak   StreakState
	// Opened is true when the update created today's record (and evaluated the streak).
	Opened bool
}

// Apply merges delta into the user's latest record for today.
// latest is the most recent stored record (any day) or nil; it is never modified.
func Apply(latest *DailyProgress, streak StreakState, delta Delta, today pkg.Date) (Result, error) {
	if !delta.Date.IsZero() && !delta.Date.Equal(today) {
		return Result{}, &StaleWriteError{Today: today, Target: delta.Date, Reason: "update is not for today"}
	}
	if latest != nil && latest.Date.After(today) {
		return Result{}, &StaleWriteError{Today: today, Target: latest.Date, Reason: "a newer day is already recorded"}
	}
	if !streak.LastActiveDate.IsZero() && streak.LastActiveDate.After(today) {
		return Result{}, &StaleWriteError{Today: today, Target: streak.LastActiveDate, Reason: "last active day is in the future"}
	}
	// an empty update is not an activity: it must neither open today's record nor count toward the streak
	if delta.Empty() {
		return Result{}, ErrEmptyUpdate
	}
	if delta.WeightKG != nil && (*delta.WeightKG < minWeightKG || *delta.WeightKG > maxWeightKG) {
		return Result{}, ErrInvalidWeight
	}

	res := Result{Streak: streak}
	switch StateOf(latest, today) {
	case StateRecordOpen:
		res.Progress = *latest
		res.Progress.WeightKG = copyWeight(latest.WeightKG)
	case StateNoRecordToday:
		// rollover: the previous record stays untouched, today starts from zero
		res.Progress = DailyProgress{Date: today}
		res.Streak = advanceStreak(streak, today)
		res.Opened = true
	}

	merged := res.Progress
	merged.Steps += delta.Steps
	merged.CaloriesConsumed += delta.CaloriesConsumed
	merged.CaloriesBurned += delta.CaloriesBurned
	merged.WaterML += delta.WaterML
	merged.WorkoutsCompleted += delta.WorkoutsCompleted
	if merged.Steps < 0 || merged.CaloriesConsumed < 0 || merged.CaloriesBurned < 0 ||
		merged.WaterML < 0 || merged.WorkoutsCompleted < 0 {
		return Result{}, ErrNegativeTotal
	}
	if delta.WeightKG != nil {
		merged.WeightKG = copyWeight(delta.WeightKG)
	}

	res.Progress = merged
	return res, nil
}

func advanceStreak(streak StreakState, today pkg.Date) StreakState {
	switch {
	case streak.LastActiveDate.Equal(today):
		return streak
	case !streak.LastActiveDate.IsZero() && streak.LastActiveDate.Equal(today.AddDays(-1)):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}
	streak.LastActiveDate = today
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	return streak
}
