package handlers

import (
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	quote, err := h.quoteService.CreateQuote(r.Context(), req.toCommand())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIQuote(quote), h.logger)
}

// ListQuotes returns the quotes issued for one request fingerprint.
func (h *Handlers) ListQuotes(w http.ResponseWriter, r *http.Request) {
	var fingerprint string
	if err := runtime.BindQueryParameter("form", true, true, "fingerprint", r.URL.Query(), &fingerprint); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(domain.NewInvalidArgumentError("fingerprint", err.Error())), h.logger)
		return
	}
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(domain.NewInvalidArgumentError("limit", err.Error())), h.logger)
		return
	}

	quotes, err := h.quoteService.QuoteHistory(r.Context(), fingerprint, limit)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	out := make([]rest.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, rest.ToAPIQuote(q))
	}
	rest.WriteJSON(w, http.StatusOK, out, h.logger)
}

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	var quoteID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "quoteID", chi.URLParam(r, "quoteID"), &quoteID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		rest.WriteError(w, application.NewInvalidInputError(domain.NewInvalidArgumentError("quoteID", err.Error())), h.logger)
		return
	}

	quote, err := h.quoteService.GetQuote(r.Context(), quoteID.String())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIQuote(quote), h.logger)
}
