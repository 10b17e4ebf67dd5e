package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes bounds how much of an unread body is discarded to keep the connection alive.
const maxDrainBytes = 64 << 10

// LimitAndDrainRequest caps request bodies at maxBodyBytes and drains what the handler
// left unread, so the keep-alive connection can be reused.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
			r.Body = body
			next.ServeHTTP(w, r)

			_, _ = io.CopyN(io.Discard, body, maxDrainBytes)
			_ = body.Close()
		})
	}
}
