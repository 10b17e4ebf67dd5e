package api

import "time"

func SetClock(h *Handler, now func() time.Time) {
	h.now = now
}
