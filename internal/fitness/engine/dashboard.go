package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitplan/internal/fitness/calc"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Percentages are completion indicators for today, each clamped to [0, 100].
type Percentages struct {
	Steps          float64 `json:"steps"`
	Water          float64 `json:"water"`
	Calories       float64 `json:"calories"`
	CaloriesBurned float64 `json:"calories_burned"`
	WeeklyWorkouts float64 `json:"weekly_workouts"`
}

type Dashboard struct {
	Date         pkg.Date               `json:"date"`
	Profile      profile.UserProfile    `json:"profile"`
	Plan         plan.FitnessPlan       `json:"plan"`
	Progress     progress.DailyProgress `json:"progress"`
	Metrics      calc.Metrics           `json:"metrics"`
	Percentages  Percentages            `json:"percentages"`
	Streak       progress.StreakState   `json:"streak"`
	Week         progress.Summary       `json:"week"`
	TodayWorkout *plan.ScheduleEntry    `json:"today_workout"`
}

// Dashboard composes everything a client shows for today. Nothing here is cached:
// metrics and percentages are computed on every call.
// A user with a profile but no stored plan gets one generated and stored.
func (e *Engine) Dashboard(ctx context.Context, userID uuid.UUID, today pkg.Date) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.dashboard")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	p, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	fp, err := e.plans.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, plan.ErrPlanNotFound) {
			return nil, fmt.Errorf("get plan: %w", err)
		}
		generated, err := e.replacePlan(ctx, userID, *p)
		if err != nil {
			return nil, err
		}
		fp = &generated
	}

	todayProgress := progress.DailyProgress{Date: today}
	rec, err := e.progress.Get(ctx, userID, today)
	switch {
	case err == nil:
		todayProgress = *rec
	case !errors.Is(err, progress.ErrProgressNotFound):
		return nil, fmt.Errorf("get today's progress: %w", err)
	}

	from, to := progress.WeekOf(today)
	records, err := e.progress.List(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list week progress: %w", err)
	}

	streak, err := e.GetStreak(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Date:     today,
		Profile:  *p,
		Plan:     *fp,
		Progress: todayProgress,
		Metrics:  calc.Compute(*p, todayProgress.WeightKG),
		Streak:   streak,
		Week:     progress.Summarize(records, from, to),
	}

	var burnGoal int
	if entry, ok := fp.EntryFor(today.Weekday()); ok {
		d.TodayWorkout = &entry
		burnGoal = entry.EstCalories
	}

	d.Percentages = Percentages{
		Steps:          calc.Percent(float64(todayProgress.Steps), float64(fp.StepGoal)),
		Water:          calc.Percent(float64(todayProgress.WaterML), float64(fp.WaterGoalML)),
		Calories:       calc.Percent(float64(todayProgress.CaloriesConsumed), float64(fp.DailyCalories)),
		CaloriesBurned: calc.Percent(float64(todayProgress.CaloriesBurned), float64(burnGoal)),
		WeeklyWorkouts: calc.Percent(float64(d.Week.TotalWorkouts), float64(fp.WorkoutGoalPerPeriod)),
	}

	return d, nil
}
