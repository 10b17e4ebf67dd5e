package progress

import (
	"context"
	"errors"

	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
)

var ErrProgressNotFound = errors.New("progress not found")

// UpdateFunc computes the new state from the stored one. It must be pure:
// stores may call it while holding a lock on the user's rows.
type UpdateFunc func(latest *DailyProgress, streak StreakState) (Result, error)

type Store interface {
	// Update runs fn and persists its result atomically per user. No update is lost
	// when several run concurrently for the same user.
	Update(ctx context.Context, userID uuid.UUID, fn UpdateFunc) (Result, error)
	Get(ctx context.Context, userID uuid.UUID, day pkg.Date) (*DailyProgress, error)
	List(ctx context.Context, userID uuid.UUID, from, to pkg.Date) ([]DailyProgress, error)
	Streak(ctx context.Context, userID uuid.UUID) (StreakState, error)
}
