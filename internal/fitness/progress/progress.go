package progress

import (
	"errors"
	"fmt"

	"github.com/2beens/fitplan/pkg"
)

const (
	minWeightKG = 30
	maxWeightKG = 300
)

var (
	ErrNegativeTotal = errors.New("update would make a daily total negative")
	ErrInvalidWeight = fmt.Errorf("weight must be between %d and %d kg", minWeightKG, maxWeightKG)
	ErrEmptyUpdate   = errors.New("update logs no activity")
)

// DailyProgress is one user's activity for one calendar day.
// Once the day is over the record is archived and never changes again.
type DailyProgress struct {
	Date              pkg.Date `json:"date"`
	Steps             int      `json:"steps"`
	CaloriesConsumed  int      `json:"calories_consumed"`
	CaloriesBurned    int      `json:"calories_burned"`
	WaterML           int      `json:"water_ml"`
	WorkoutsCompleted int      `json:"workouts_completed"`
	WeightKG          *float64 `json:"weight_kg"`
}

// Delta is an incremental update. Counters are added, weight replaces the stored value.
// A zero Date means "today".
type Delta struct {
	Date              pkg.Date `json:"date"`
	Steps             int      `json:"steps"`
	CaloriesConsumed  int      `json:"calories_consumed"`
	CaloriesBurned    int      `json:"calories_burned"`
	WaterML           int      `json:"water_ml"`
	WorkoutsCompleted int      `json:"workouts_completed"`
	WeightKG          *float64 `json:"weight_kg"`
}

// Empty reports whether the delta logs nothing at all.
func (d Delta) Empty() bool {
	return d.Steps == 0 && d.CaloriesConsumed == 0 && d.CaloriesBurned == 0 &&
		d.WaterML == 0 && d.WorkoutsCompleted == 0 && d.WeightKG == nil
}

type StreakState struct {
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	LastActiveDate pkg.Date `json:"last_active_date"`
}

// Active returns the streak as seen on today: a streak whose last active day
// is before yesterday is already broken, even though nothing has reset it yet.
func (s StreakState) Active(today pkg.Date) int {
	if s.LastActiveDate.IsZero() {
		return 0
	}
	if s.LastActiveDate.Equal(today) || s.LastActiveDate.Equal(today.AddDays(-1)) {
		return s.CurrentStreak
	}
	return 0
}

// StaleWriteError rejects an update that does not target the consumer's today.
type StaleWriteError struct {
	Today  pkg.Date
	Target pkg.Date
	Reason string
}

func (e *StaleWriteError) Error() string {
	return fmt.Sprintf("stale progress write for %s (today is %s): %s", e.Target, e.Today, e.Reason)
}

func copyWeight(w *float64) *float64 {
	if w == nil {
		return nil
	}
	v := *w
	return &v
}
