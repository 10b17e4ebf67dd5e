package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/pkg"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []profile.FieldError `json:"fields,omitempty"`
}

// writeError maps engine errors to HTTP statuses. Unknown errors are logged and hidden.
func writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	var (
		validationErr *profile.ValidationError
		staleErr      *progress.StaleWriteError
	)

	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		resp.Error = "invalid profile"
		resp.Fields = validationErr.Fields
	case errors.As(err, &staleErr):
		status = http.StatusConflict
	case errors.Is(err, progress.ErrNegativeTotal), errors.Is(err, progress.ErrInvalidWeight),
		errors.Is(err, progress.ErrEmptyUpdate):
		status = http.StatusBadRequest
	case errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, plan.ErrPlanNotFound),
		errors.Is(err, progress.ErrProgressNotFound):
		status = http.StatusNotFound
	default:
		log.WithContext(ctx).Errorf("%s: %s", op, err)
		resp.Error = "internal error"
	}

	writeJSON(w, resp, status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, status)
}
