package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitplan/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimitKeyFunc derives the bucket a request counts against.
type RateLimitKeyFunc func(r *http.Request) string

// PerUserKey gives every user their own bucket for the named route,
// requests without a user id share one.
func PerUserKey(routeName string) RateLimitKeyFunc {
	return func(r *http.Request) string {
		userID, ok := UserIDFrom(r.Context())
		if !ok {
			return routeName + "::anonymous"
		}
		return routeName + "::" + userID.String()
	}
}

func RateLimit(
	rateLimiter RequestRateLimiter,
	keyFunc RateLimitKeyFunc,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			res, err := rateLimiter.Allow(
				r.Context(),
				key,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", key, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", res.RetryAfter.Seconds()))
			http.Error(
				w,
				fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}
