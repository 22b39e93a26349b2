package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recovery turns a panic into a 500 envelope and logs the stack.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", chimw.GetReqID(r.Context()),
						"stack", string(debug.Stack()),
					)

					rest.WriteError(w, application.NewInternalError(fmt.Errorf("panic: %v", rec)), logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
