package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"success":false,"error":{"code":"TIMEOUT","message":"request timed out"}}`

// Timeout bounds each request. Handlers see the deadline on the request
// context; a handler that overruns gets a TIMEOUT envelope written for it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(jsonContentType(next), timeout, timeoutBody)
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
