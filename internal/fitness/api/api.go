// Package api exposes the fitness engine over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/fitplan/internal/fitness/calc"
	"github.com/2beens/fitplan/internal/fitness/engine"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=api_mocks_test.go -package=api_test
type fitnessEngine interface {
	ValidateProfile(raw map[string]any) (profile.UserProfile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, raw map[string]any) (profile.UserProfile, plan.FitnessPlan, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*profile.UserProfile, error)
	RegeneratePlan(ctx context.Context, userID uuid.UUID) (plan.FitnessPlan, error)
	GetPlan(ctx context.Context, userID uuid.UUID) (*plan.FitnessPlan, error)
	ApplyProgressUpdate(ctx context.Context, userID uuid.UUID, delta progress.Delta, today pkg.Date) (progress.DailyProgress, error)
	GetProgress(ctx context.Context, userID uuid.UUID, day pkg.Date) (*progress.DailyProgress, error)
	GetStreak(ctx context.Context, userID uuid.UUID, today pkg.Date) (progress.StreakState, error)
	Dashboard(ctx context.Context, userID uuid.UUID, today pkg.Date) (*engine.Dashboard, error)
	ComputeMetrics(p profile.UserProfile, weightOverride *float64) calc.Metrics
}

type locationResolver interface {
	LocationFor(ctx context.Context, r *http.Request) *time.Location
}

type Handler struct {
	engine    fitnessEngine
	locations locationResolver
	now       func() time.Time
}

func NewHandler(engine fitnessEngine, locations locationResolver) *Handler {
	return &Handler{
		engine:    engine,
		locations: locations,
		now:       time.Now,
	}
}

// Routes registers the fitness endpoints on r. planLimiter wraps the plan generation
// endpoint, it may be nil.
func (h *Handler) Routes(r *mux.Router, planLimiter mux.MiddlewareFunc) {
	r.HandleFunc("/profile/validate", h.HandleValidateProfile).Methods("POST", "OPTIONS").Name("validate-profile")
	r.HandleFunc("/profile", h.HandleSaveProfile).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/profile", h.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")

	var generate http.Handler = http.HandlerFunc(h.HandleGeneratePlan)
	if planLimiter != nil {
		generate = planLimiter(generate)
	}
	r.Handle("/plan/generate", generate).Methods("POST", "OPTIONS").Name("generate-plan")
	r.HandleFunc("/plan", h.HandleGetPlan).Methods("GET", "OPTIONS").Name("get-plan")

	r.HandleFunc("/progress", h.HandleProgressUpdate).Methods("POST", "OPTIONS").Name("update-progress")
	r.HandleFunc("/progress/{date}", h.HandleGetProgress).Methods("GET", "OPTIONS").Name("get-progress")
	r.HandleFunc("/streak", h.HandleGetStreak).Methods("GET", "OPTIONS").Name("get-streak")
	r.HandleFunc("/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/metrics", h.HandleComputeMetrics).Methods("POST", "OPTIONS").Name("compute-metrics")
}
