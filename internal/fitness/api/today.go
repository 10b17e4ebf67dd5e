package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitplan/pkg"
)

const TimezoneHeader = "X-Timezone"

var errInvalidTimezone = errors.New("invalid timezone")

// today resolves the caller's calendar day: the date query param wins, then the
// X-Timezone header, then the timezone of the client IP.
func (h *Handler) today(r *http.Request) (pkg.Date, error) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		return pkg.ParseDate(raw)
	}
	loc, err := h.location(r)
	if err != nil {
		return pkg.Date{}, err
	}
	return pkg.DateOf(h.now().In(loc)), nil
}

func (h *Handler) location(r *http.Request) (*time.Location, error) {
	if tz := r.Header.Get(TimezoneHeader); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w %q", errInvalidTimezone, tz)
		}
		return loc, nil
	}
	if h.locations == nil {
		return time.UTC, nil
	}
	return h.locations.LocationFor(r.Context(), r), nil
}
