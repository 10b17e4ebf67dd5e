package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// UserIDHeader carries the user id set by the upstream gateway.
const UserIDHeader = "X-User-Id"

type userIDKey struct{}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}

// UserIdentity reads the caller's id from UserIDHeader into the request context.
// Paths in publicPaths need no identity.
func UserIdentity(publicPaths ...string) func(next http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.user_identity")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if public[r.URL.Path] {
				span.SetStatus(codes.Ok, "public")
				next.ServeHTTP(w, r)
				return
			}

			rawID := r.Header.Get(UserIDHeader)
			if rawID == "" {
				log.Tracef("[missing user id] => %s", r.URL.Path)
				http.Error(w, "missing user id", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-user-id")
				return
			}

			userID, err := uuid.Parse(rawID)
			if err != nil {
				log.Debugf("[invalid user id] [%s] => %s: %s", rawID, r.URL.Path, err)
				http.Error(w, "invalid user id", http.StatusBadRequest)
				span.SetStatus(codes.Error, "invalid-user-id")
				return
			}

			span.SetAttributes(attribute.String("user.id", userID.String()))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}
