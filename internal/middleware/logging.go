package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithContext(r.Context()).WithFields(log.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"ua":      r.Header.Get("User-Agent"),
				"user_id": r.Header.Get(UserIDHeader),
			}).Trace(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}
