package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*Repo)(nil)

const progressColumns = `day, steps, calories_consumed, calories_burned, water_ml, workouts_completed, weight_kg`

type Repo struct {
	db db.Conn
}

func NewRepo(conn db.Conn) *Repo {
	return &Repo{
		db: conn,
	}
}

// Update locks the user's streak row for the whole read-merge-write, so concurrent
// updates for the same user are serialized by Postgres.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, fn UpdateFunc) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.update")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("rollback progress tx: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO user_streak (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING;`,
		userID,
	); err != nil {
		return Result{}, fmt.Errorf("ensure streak row: %w", err)
	}

	var (
		streak     StreakState
		lastActive *time.Time
	)
	if err = tx.QueryRow(
		ctx,
		`SELECT current_streak, longest_streak, last_active_date FROM user_streak WHERE user_id = $1 FOR UPDATE;`,
		userID,
	).Scan(&streak.CurrentStreak, &streak.LongestStreak, &lastActive); err != nil {
		return Result{}, fmt.Errorf("lock streak row: %w", err)
	}
	if lastActive != nil {
		streak.LastActiveDate = pkg.DateOf(*lastActive)
	}

	latest, err := scanProgress(tx.QueryRow(
		ctx,
		`SELECT `+progressColumns+` FROM daily_progress WHERE user_id = $1 ORDER BY day DESC LIMIT 1;`,
		userID,
	))
	if err != nil {
		if !errors.Is(err, ErrProgressNotFound) {
			return Result{}, fmt.Errorf("select latest progress: %w", err)
		}
		err = nil
	}

	res, err := fn(latest, streak)
	if err != nil {
		return Result{}, err
	}

	p := res.Progress
	if _, err = tx.Exec(
		ctx,
		`INSERT INTO daily_progress (user_id, `+progressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, day) DO UPDATE SET
			steps = EXCLUDED.steps,
			calories_consumed = EXCLUDED.calories_consumed,
			calories_burned = EXCLUDED.calories_burned,
			water_ml = EXCLUDED.water_ml,
			workouts_completed = EXCLUDED.workouts_completed,
			weight_kg = EXCLUDED.weight_kg;`,
		userID, p.Date.Time, p.Steps, p.CaloriesConsumed, p.CaloriesBurned, p.WaterML, p.WorkoutsCompleted, p.WeightKG,
	); err != nil {
		return Result{}, fmt.Errorf("upsert progress: %w", err)
	}

	if _, err = tx.Exec(
		ctx,
		`UPDATE user_streak SET current_streak = $2, longest_streak = $3, last_active_date = $4 WHERE user_id = $1;`,
		userID, res.Streak.CurrentStreak, res.Streak.LongestStreak, nullableDate(res.Streak.LastActiveDate),
	); err != nil {
		return Result{}, fmt.Errorf("update streak: %w", err)
	}

	return res, nil
}

func (r *Repo) Get(ctx context.Context, userID uuid.UUID, day pkg.Date) (_ *DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer tracing.EndSpanWithErrCheck(span, &err)

	return scanProgress(r.db.QueryRow(
		ctx,
		`SELECT `+progressColumns+` FROM daily_progress WHERE user_id = $1 AND day = $2;`,
		userID, day.Time,
	))
}

func (r *Repo) List(ctx context.Context, userID uuid.UUID, from, to pkg.Date) (_ []DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer tracing.EndSpanWithErrCheck(span, &err)

	rows, err := r.db.Query(
		ctx,
		`SELECT `+progressColumns+` FROM daily_progress WHERE user_id = $1 AND day BETWEEN $2 AND $3 ORDER BY day;`,
		userID, from.Time, to.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("select progress range: %w", err)
	}
	defer rows.Close()

	var records []DailyProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress rows: %w", err)
	}

	return records, nil
}

func (r *Repo) Streak(ctx context.Context, userID uuid.UUID) (_ StreakState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.streak")
	defer tracing.EndSpanWithErrCheck(span, &err)

	var (
		streak     StreakState
		lastActive *time.Time
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT current_streak, longest_streak, last_active_date FROM user_streak WHERE user_id = $1;`,
		userID,
	).Scan(&streak.CurrentStreak, &streak.LongestStreak, &lastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StreakState{}, nil
		}
		return StreakState{}, fmt.Errorf("select streak: %w", err)
	}
	if lastActive != nil {
		streak.LastActiveDate = pkg.DateOf(*lastActive)
	}

	return streak, nil
}

func scanProgress(row pgx.Row) (*DailyProgress, error) {
	var (
		p   DailyProgress
		day time.Time
	)
	if err := row.Scan(&day, &p.Steps, &p.CaloriesConsumed, &p.CaloriesBurned, &p.WaterML, &p.WorkoutsCompleted, &p.WeightKG); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	p.Date = pkg.DateOf(day)
	return &p, nil
}

func nullableDate(d pkg.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
