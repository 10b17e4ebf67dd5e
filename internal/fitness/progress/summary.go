package progress

import (
	"math"
	"sort"

	"github.com/2beens/fitplan/pkg"
)

type Summary struct {
	From             pkg.Date `json:"from"`
	To               pkg.Date `json:"to"`
	DaysLogged       int      `json:"days_logged"`
	TotalSteps       int      `json:"total_steps"`
	AverageSteps     int      `json:"average_steps"`
	TotalWorkouts    int      `json:"total_workouts"`
	TotalWaterML     int      `json:"total_water_ml"`
	TotalCaloriesIn  int      `json:"total_calories_in"`
	TotalCaloriesOut int      `json:"total_calories_out"`
	LatestWeightKG   *float64 `json:"latest_weight_kg"`
}

// Summarize rolls up the records dated within [from, to]. Averages are over logged days.
func Summarize(records []DailyProgress, from, to pkg.Date) Summary {
	s := Summary{From: from, To: to}

	inRange := make([]DailyProgress, 0, len(records))
	for _, r := range records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		inRange = append(inRange, r)
	}
	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].Date.Before(inRange[j].Date)
	})

	for _, r := range inRange {
		s.DaysLogged++
		s.TotalSteps += r.Steps
		s.TotalWorkouts += r.WorkoutsCompleted
		s.TotalWaterML += r.WaterML
		s.TotalCaloriesIn += r.CaloriesConsumed
		s.TotalCaloriesOut += r.CaloriesBurned
		if r.WeightKG != nil {
			s.LatestWeightKG = copyWeight(r.WeightKG)
		}
	}
	if s.DaysLogged > 0 {
		s.AverageSteps = int(math.Round(float64(s.TotalSteps) / float64(s.DaysLogged)))
	}
	return s
}

// WeekOf returns the Monday..Sunday range containing day.
func WeekOf(day pkg.Date) (pkg.Date, pkg.Date) {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDays(-offset)
	return monday, monday.AddDays(6)
}
