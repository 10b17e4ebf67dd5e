package api

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/fitplan/internal/fitness/calc"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/internal/middleware"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SaveProfileResponse struct {
	Profile profile.UserProfile `json:"profile"`
	Plan    plan.FitnessPlan    `json:"plan"`
}

type MetricsRequest struct {
	Profile  map[string]any `json:"profile"`
	WeightKG *float64       `json:"weight_kg"`
}

type MetricsResponse struct {
	Profile profile.UserProfile `json:"profile"`
	Metrics calc.Metrics        `json:"metrics"`
}

func (h *Handler) HandleValidateProfile(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.validate")
	defer span.End()

	raw, ok := decodeRawProfile(w, r)
	if !ok {
		return
	}

	p, err := h.engine.ValidateProfile(raw)
	if err != nil {
		writeError(r.Context(), w, "validate profile", err)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	raw, ok := decodeRawProfile(w, r)
	if !ok {
		return
	}

	p, fp, err := h.engine.SaveProfile(ctx, userID, raw)
	if err != nil {
		writeError(ctx, w, "save profile", err)
		return
	}

	log.Debugf("profile saved for user [%s], plan source: %s", userID, fp.Source)
	writeJSON(w, SaveProfileResponse{Profile: p, Plan: fp}, http.StatusOK)
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.engine.GetProfile(ctx, userID)
	if err != nil {
		writeError(ctx, w, "get profile", err)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.generate")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	fp, err := h.engine.RegeneratePlan(ctx, userID)
	if err != nil {
		writeError(ctx, w, "regenerate plan", err)
		return
	}
	writeJSON(w, fp, http.StatusOK)
}

func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	fp, err := h.engine.GetPlan(ctx, userID)
	if err != nil {
		writeError(ctx, w, "get plan", err)
		return
	}
	writeJSON(w, fp, http.StatusOK)
}

func (h *Handler) HandleProgressUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var delta progress.Delta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		log.Debugf("progress update, unmarshal json params: %s", err)
		http.Error(w, "invalid progress update", http.StatusBadRequest)
		return
	}

	// the body date is the day the client thinks it is updating; today comes from the clock
	loc, err := h.location(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	today := pkg.DateOf(h.now().In(loc))

	rec, err := h.engine.ApplyProgressUpdate(ctx, userID, delta, today)
	if err != nil {
		writeError(ctx, w, "apply progress update", err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	day, err := pkg.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	rec, err := h.engine.GetProgress(ctx, userID, day)
	if err != nil {
		writeError(ctx, w, "get progress", err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *Handler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	today, err := h.today(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	streak, err := h.engine.GetStreak(ctx, userID, today)
	if err != nil {
		writeError(ctx, w, "get streak", err)
		return
	}
	writeJSON(w, streak, http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	today, err := h.today(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.engine.Dashboard(ctx, userID, today)
	if err != nil {
		writeError(ctx, w, "dashboard", err)
		return
	}
	writeJSON(w, d, http.StatusOK)
}

// HandleComputeMetrics computes metrics for a raw profile without storing anything.
func (h *Handler) HandleComputeMetrics(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.metrics.compute")
	defer span.End()

	var req MetricsRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "invalid metrics request", http.StatusBadRequest)
		return
	}

	p, err := h.engine.ValidateProfile(req.Profile)
	if err != nil {
		writeError(r.Context(), w, "compute metrics", err)
		return
	}
	writeJSON(w, MetricsResponse{Profile: p, Metrics: h.engine.ComputeMetrics(p, req.WeightKG)}, http.StatusOK)
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing user id", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// decodeRawProfile keeps numbers as json.Number so validation sees what the client sent.
func decodeRawProfile(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var raw map[string]any
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		log.Debugf("raw profile, unmarshal json: %s", err)
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return nil, false
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, true
}
