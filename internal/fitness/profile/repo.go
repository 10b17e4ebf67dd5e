package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var ErrProfileNotFound = errors.New("profile not found")

type Store interface {
	Save(ctx context.Context, userID uuid.UUID, p UserProfile) error
	// Get returns ErrProfileNotFound when the user has no profile.
	Get(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
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

func (r *Repo) Save(ctx context.Context, userID uuid.UUID, p UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	defaulted := p.DefaultedFields
	if defaulted == nil {
		defaulted = []string{}
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (user_id, age, sex, height_cm, weight_kg, fitness_level, goal, activity_level, defaulted_fields, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			fitness_level = EXCLUDED.fitness_level,
			goal = EXCLUDED.goal,
			activity_level = EXCLUDED.activity_level,
			defaulted_fields = EXCLUDED.defaulted_fields,
			updated_at = EXCLUDED.updated_at;`,
		userID, p.Age, string(p.Sex), p.HeightCM, p.WeightKG,
		string(p.FitnessLevel), string(p.Goal), string(p.ActivityLevel),
		defaulted, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("user.id", userID.String()))

	var (
		p                          UserProfile
		sex, level, goal, activity string
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT age, sex, height_cm, weight_kg, fitness_level, goal, activity_level, defaulted_fields, updated_at
		FROM user_profile WHERE user_id = $1;`,
		userID,
	).Scan(&p.Age, &sex, &p.HeightCM, &p.WeightKG, &level, &goal, &activity, &p.DefaultedFields, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}

	p.Sex = Sex(sex)
	p.FitnessLevel = FitnessLevel(level)
	p.Goal = Goal(goal)
	p.ActivityLevel = ActivityLevel(activity)
	if len(p.DefaultedFields) == 0 {
		p.DefaultedFields = nil
	}
	return &p, nil
}
