package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const internalErrorBody = `{"error":"internal error"}`

// PanicRecovery turns a handler panic into a JSON 500 and logs it with the caller's user id.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				fields := log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}
				if userID, ok := UserIDFrom(r.Context()); ok {
					fields["user_id"] = userID.String()
				}
				log.WithContext(r.Context()).WithFields(fields).Errorf("panic serving request: %v\n%s", recovered, debug.Stack())

				span := trace.SpanFromContext(r.Context())
				span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", recovered))

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteResponse(w, pkg.ContentType.JSON, internalErrorBody, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
