package plan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultWriterTimeout = 8 * time.Second

// fallback reasons, also used as metric labels
const (
	FallbackDisabled     = "disabled"
	FallbackWriterError  = "writer_error"
	FallbackTimeout      = "timeout"
	FallbackInvalidDraft = "invalid_draft"
)

type Generator struct {
	writer         Writer
	timeout        time.Duration
	metricsManager *metrics.Manager
	now            func() time.Time
}

// NewGenerator creates a plan generator. A nil writer means AI plans are disabled.
func NewGenerator(writer Writer, timeout time.Duration, metricsManager *metrics.Manager) *Generator {
	if timeout <= 0 {
		timeout = DefaultWriterTimeout
	}
	return &Generator{
		writer:         writer,
		timeout:        timeout,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

type writeResult struct {
	draft *Draft
	err   error
}

// Generate always returns a usable plan. Writer failures of any kind
// are logged and replaced by the deterministic fallback.
func (g *Generator) Generate(ctx context.Context, p profile.UserProfile) FitnessPlan {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plan.generate")
	defer span.End()

	generatedAt := g.now()
	if g.writer == nil {
		return g.fallback(ctx, p, generatedAt, FallbackDisabled, nil)
	}

	writeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resCh := make(chan writeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resCh <- writeResult{err: fmt.Errorf("plan writer panic: %v", r)}
			}
		}()
		draft, err := g.writer.WritePlan(writeCtx, p)
		resCh <- writeResult{draft: draft, err: err}
	}()

	var res writeResult
	select {
	case res = <-resCh:
	case <-writeCtx.Done():
		return g.fallback(ctx, p, generatedAt, FallbackTimeout, writeCtx.Err())
	}

	if res.err != nil {
		reason := FallbackWriterError
		if errors.Is(res.err, context.DeadlineExceeded) {
			reason = FallbackTimeout
		}
		return g.fallback(ctx, p, generatedAt, reason, res.err)
	}

	plan, err := FromDraft(res.draft, generatedAt)
	if err != nil {
		return g.fallback(ctx, p, generatedAt, FallbackInvalidDraft, err)
	}

	span.SetAttributes(attribute.String("plan.source", string(SourceAI)))
	if g.metricsManager != nil {
		g.metricsManager.CounterPlansGenerated.WithLabelValues(string(SourceAI)).Inc()
	}
	return plan
}

func (g *Generator) fallback(ctx context.Context, p profile.UserProfile, generatedAt time.Time, reason string, cause error) FitnessPlan {
	fields := log.Fields{"reason": reason}
	if cause != nil {
		fields["cause"] = cause.Error()
	}
	log.WithContext(ctx).WithFields(fields).Info("plan generation fallback")

	if g.metricsManager != nil {
		g.metricsManager.CounterPlanFallbacks.WithLabelValues(reason).Inc()
		g.metricsManager.CounterPlansGenerated.WithLabelValues(string(SourceFallback)).Inc()
	}
	return Fallback(p, generatedAt)
}

// FromDraft checks a writer draft and converts it to a plan with source "ai".
func FromDraft(d *Draft, generatedAt time.Time) (FitnessPlan, error) {
	if d == nil {
		return FitnessPlan{}, &InvariantViolation{Field: "draft", Reason: "is empty"}
	}

	numbers := []struct {
		name  string
		value *float64
	}{
		{name: "daily_calories", value: d.DailyCalories},
		{name: "protein_g", value: d.ProteinG},
		{name: "carbs_g", value: d.CarbsG},
		{name: "fat_g", value: d.FatG},
		{name: "water_goal_ml", value: d.WaterGoalML},
		{name: "step_goal", value: d.StepGoal},
		{name: "workout_goal_per_period", value: d.WorkoutGoalPerPeriod},
	}

	plan := FitnessPlan{
		Source:      SourceAI,
		GeneratedAt: generatedAt.UTC(),
	}
	targets := []*int{
		&plan.DailyCalories, &plan.ProteinG, &plan.CarbsG, &plan.FatG,
		&plan.WaterGoalML, &plan.StepGoal, &plan.WorkoutGoalPerPeriod,
	}
	for i, n := range numbers {
		if n.value == nil {
			return FitnessPlan{}, &InvariantViolation{Field: n.name, Reason: "is missing"}
		}
		if !isFinite(*n.value) || *n.value <= 0 {
			return FitnessPlan{}, &InvariantViolation{Field: n.name, Reason: "must be positive"}
		}
		*targets[i] = int(math.Round(*n.value))
	}

	if len(d.WeeklySchedule) != len(Weekdays) {
		return FitnessPlan{}, &InvariantViolation{
			Field:  "weekly_schedule",
			Reason: fmt.Sprintf("must have %d entries, got %d", len(Weekdays), len(d.WeeklySchedule)),
		}
	}

	for i, e := range d.WeeklySchedule {
		field := fmt.Sprintf("weekly_schedule[%d]", i)
		if e.Day == "" {
			return FitnessPlan{}, &InvariantViolation{Field: field + ".day", Reason: "is missing"}
		}
		if e.DurationMin == nil || !isFinite(*e.DurationMin) || *e.DurationMin < 0 {
			return FitnessPlan{}, &InvariantViolation{Field: field + ".duration_min", Reason: "must be non-negative"}
		}
		if e.EstCalories == nil || !isFinite(*e.EstCalories) || *e.EstCalories < 0 {
			return FitnessPlan{}, &InvariantViolation{Field: field + ".est_calories", Reason: "must be non-negative"}
		}

		exercises := e.Exercises
		if exercises == nil {
			exercises = []string{}
		}
		plan.WeeklySchedule = append(plan.WeeklySchedule, ScheduleEntry{
			Day:         e.Day,
			WorkoutType: WorkoutType(e.WorkoutType),
			DurationMin: int(math.Round(*e.DurationMin)),
			EstCalories: int(math.Round(*e.EstCalories)),
			Exercises:   exercises,
		})
	}

	plan.Recommendations = d.Recommendations
	if plan.Recommendations == nil {
		plan.Recommendations = []string{}
	}

	return plan, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
