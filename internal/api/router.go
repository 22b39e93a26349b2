package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP handler: docs and health at the root, the API
// under /api/v1 behind OpenAPI request validation.
func NewRouter(h *handlers.Handlers, logger *slog.Logger, requestTimeout time.Duration) (http.Handler, error) {
	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	validator, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})
	r.Get("/docs/openapi.yaml", ServeSpec)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(validator)
		h.Register(r)
	})

	return r, nil
}
