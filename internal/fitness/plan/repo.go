package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var ErrPlanNotFound = errors.New("plan not found")

// Store keeps one plan per user. Replace must be atomic.
type Store interface {
	Replace(ctx context.Context, userID uuid.UUID, plan FitnessPlan) error
	Get(ctx context.Context, userID uuid.UUID) (*FitnessPlan, error)
}

var _ Store = (*Repo)(nil)

type Repo struct {
	db db.Conn
}

func NewRepo(conn db.Conn) *Repo {
	return &Repo{
		db: conn,
	}
}

// Replace stores plan as the user's only plan in a single statement,
// so readers see either the old or the new plan, never a mix.
func (r *Repo) Replace(ctx context.Context, userID uuid.UUID, plan FitnessPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.replace")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("plan.source", string(plan.Source)),
	)

	scheduleJSON, err := json.Marshal(plan.WeeklySchedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	recsJSON, err := json.Marshal(plan.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO fitness_plan (
			user_id, daily_calories, protein_g, carbs_g, fat_g, water_goal_ml, step_goal,
			workout_goal_per_period, weekly_schedule, recommendations, source, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_calories = EXCLUDED.daily_calories,
			protein_g = EXCLUDED.protein_g,
			carbs_g = EXCLUDED.carbs_g,
			fat_g = EXCLUDED.fat_g,
			water_goal_ml = EXCLUDED.water_goal_ml,
			step_goal = EXCLUDED.step_goal,
			workout_goal_per_period = EXCLUDED.workout_goal_per_period,
			weekly_schedule = EXCLUDED.weekly_schedule,
			recommendations = EXCLUDED.recommendations,
			source = EXCLUDED.source,
			generated_at = EXCLUDED.generated_at;`,
		userID, plan.DailyCalories, plan.ProteinG, plan.CarbsG, plan.FatG, plan.WaterGoalML, plan.StepGoal,
		plan.WorkoutGoalPerPeriod, scheduleJSON, recsJSON, string(plan.Source), plan.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (_ *FitnessPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.get")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	var (
		plan                   FitnessPlan
		scheduleJSON, recsJSON []byte
		source                 string
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT daily_calories, protein_g, carbs_g, fat_g, water_goal_ml, step_goal,
			workout_goal_per_period, weekly_schedule, recommendations, source, generated_at
		FROM fitness_plan WHERE user_id = $1;`,
		userID,
	).Scan(
		&plan.DailyCalories, &plan.ProteinG, &plan.CarbsG, &plan.FatG, &plan.WaterGoalML, &plan.StepGoal,
		&plan.WorkoutGoalPerPeriod, &scheduleJSON, &recsJSON, &source, &plan.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("select plan: %w", err)
	}

	if err := json.Unmarshal(scheduleJSON, &plan.WeeklySchedule); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}
	if err := json.Unmarshal(recsJSON, &plan.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	plan.Source = Source(source)
	plan.GeneratedAt = plan.GeneratedAt.UTC()

	return &plan, nil
}
