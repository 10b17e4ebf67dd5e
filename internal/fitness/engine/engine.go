// Package engine is the single entry point into the fitness plan and progress logic.
// It composes validation, plan generation and progress aggregation with the stores.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitplan/internal/fitness/calc"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	outcomeApplied  = "applied"
	outcomeOpened   = "opened"
	outcomeStale    = "stale"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

type Engine struct {
	profiles       profile.Store
	plans          plan.Store
	progress       progress.Store
	generator      *plan.Generator
	metricsManager *metrics.Manager

	progressLocks *userLocks
	planLocks     *userLocks
}

type NewEngineParams struct {
	Profiles       profile.Store
	Plans          plan.Store
	Progress       progress.Store
	Generator      *plan.Generator
	MetricsManager *metrics.Manager
}

func New(params NewEngineParams) *Engine {
	generator := params.Generator
	if generator == nil {
		generator = plan.NewGenerator(nil, 0, params.MetricsManager)
	}
	return &Engine{
		profiles:       params.Profiles,
		plans:          params.Plans,
		progress:       params.Progress,
		generator:      generator,
		metricsManager: params.MetricsManager,
		progressLocks:  newUserLocks(),
		planLocks:      newUserLocks(),
	}
}

func (e *Engine) ValidateProfile(raw map[string]any) (profile.UserProfile, error) {
	p, err := profile.Validate(raw)
	if e.metricsManager != nil {
		result := "valid"
		if err != nil {
			result = "invalid"
		}
		e.metricsManager.CounterProfileValidations.WithLabelValues(result).Inc()
	}
	return p, err
}

// GeneratePlan does not touch storage.
func (e *Engine) GeneratePlan(ctx context.Context, p profile.UserProfile) plan.FitnessPlan {
	return e.generator.Generate(ctx, p)
}

func (e *Engine) ComputeMetrics(p profile.UserProfile, weightOverride *float64) calc.Metrics {
	return calc.Compute(p, weightOverride)
}

// SaveProfile validates and stores the profile, then replaces the user's plan.
func (e *Engine) SaveProfile(ctx context.Context, userID uuid.UUID, raw map[string]any) (_ profile.UserProfile, _ plan.FitnessPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.profile.save")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	p, err := e.ValidateProfile(raw)
	if err != nil {
		return profile.UserProfile{}, plan.FitnessPlan{}, err
	}
	if err := e.profiles.Save(ctx, userID, p); err != nil {
		return profile.UserProfile{}, plan.FitnessPlan{}, fmt.Errorf("save profile: %w", err)
	}

	fp, err := e.replacePlan(ctx, userID, p)
	if err != nil {
		return profile.UserProfile{}, plan.FitnessPlan{}, err
	}
	return p, fp, nil
}

// RegeneratePlan builds a new plan from the stored profile and replaces the old one.
func (e *Engine) RegeneratePlan(ctx context.Context, userID uuid.UUID) (_ plan.FitnessPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.plan.regenerate")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	p, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return plan.FitnessPlan{}, err
	}
	return e.replacePlan(ctx, userID, *p)
}

func (e *Engine) replacePlan(ctx context.Context, userID uuid.UUID, p profile.UserProfile) (plan.FitnessPlan, error) {
	release := e.planLocks.lock(userID)
	defer release()

	fp := e.generator.Generate(ctx, p)
	if err := e.plans.Replace(ctx, userID, fp); err != nil {
		return plan.FitnessPlan{}, fmt.Errorf("store plan: %w", err)
	}
	return fp, nil
}

// ApplyProgressUpdate merges delta into the user's record for today.
// Updates for the same user are serialized, none is lost.
func (e *Engine) ApplyProgressUpdate(ctx context.Context, userID uuid.UUID, delta progress.Delta, today pkg.Date) (_ progress.DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.progress.apply")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("today", today.String()),
	)

	release := e.progressLocks.lock(userID)
	defer release()

	res, err := e.progress.Update(ctx, userID, func(latest *progress.DailyProgress, streak progress.StreakState) (progress.Result, error) {
		return progress.Apply(latest, streak, delta, today)
	})
	if err != nil {
		e.countProgressUpdate(outcomeFor(err))
		var staleErr *progress.StaleWriteError
		if errors.As(err, &staleErr) {
			log.WithContext(ctx).WithFields(log.Fields{
				"user_id": userID.String(),
				"today":   today.String(),
				"target":  staleErr.Target.String(),
			}).Warn("stale progress write rejected")
		}
		return progress.DailyProgress{}, err
	}

	if res.Opened {
		e.countProgressUpdate(outcomeOpened)
		if e.metricsManager != nil {
			e.metricsManager.HistStreakLength.Observe(float64(res.Streak.CurrentStreak))
		}
	} else {
		e.countProgressUpdate(outcomeApplied)
	}

	return res.Progress, nil
}

func (e *Engine) countProgressUpdate(outcome string) {
	if e.metricsManager == nil {
		return
	}
	e.metricsManager.CounterProgressUpdates.WithLabelValues(outcome).Inc()
}

func outcomeFor(err error) string {
	var staleErr *progress.StaleWriteError
	switch {
	case errors.As(err, &staleErr):
		return outcomeStale
	case errors.Is(err, progress.ErrNegativeTotal), errors.Is(err, progress.ErrInvalidWeight),
		errors.Is(err, progress.ErrEmptyUpdate):
		return outcomeRejected
	default:
		return outcomeError
	}
}

func (e *Engine) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.UserProfile, error) {
	return e.profiles.Get(ctx, userID)
}

func (e *Engine) GetPlan(ctx context.Context, userID uuid.UUID) (*plan.FitnessPlan, error) {
	return e.plans.Get(ctx, userID)
}

// GetProgress returns the record for day, ErrProgressNotFound if nothing was logged that day.
func (e *Engine) GetProgress(ctx context.Context, userID uuid.UUID, day pkg.Date) (*progress.DailyProgress, error) {
	return e.progress.Get(ctx, userID, day)
}

// GetStreak returns the streak as seen on today: a streak not extended since
// before yesterday reads as 0 while the longest streak is kept.
func (e *Engine) GetStreak(ctx context.Context, userID uuid.UUID, today pkg.Date) (progress.StreakState, error) {
	streak, err := e.progress.Streak(ctx, userID)
	if err != nil {
		return progress.StreakState{}, fmt.Errorf("get streak: %w", err)
	}
	streak.CurrentStreak = streak.Active(today)
	return streak, nil
}
