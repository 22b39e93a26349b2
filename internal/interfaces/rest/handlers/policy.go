package handlers

import (
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListPolicies(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.policyService.ListPolicies(), h.logger)
}

func (h *Handlers) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.policyService.GetPolicy(chi.URLParam(r, "name"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPolicy(p), h.logger)
}

func (h *Handlers) ValidateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.policyService.ValidateRoute(services.RouteCommand{
		PolicyName: chi.URLParam(r, "name"),
		Countries:  req.Countries,
		Days:       req.Days,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPICrossBorderValidation(result), h.logger)
}

func (h *Handlers) CalculateSurcharge(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd := services.RouteCommand{
		PolicyName: chi.URLParam(r, "name"),
		Countries:  req.Countries,
		Days:       req.Days,
	}
	result, err := h.policyService.Surcharge(cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, SurchargeResponse{
		Policy:    result.Policy,
		Countries: req.Countries,
		Days:      req.Days,
		Total:     rest.ToAPIMoney(result.Total),
	}, h.logger)
}
