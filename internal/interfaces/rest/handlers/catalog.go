package handlers

import (
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
)

func (h *Handlers) ListInsurancePackages(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIInsurancePackages(h.catalogService.InsurancePackages()), h.logger)
}

func (h *Handlers) ListKilometerPackages(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIKilometerPackages(h.catalogService.KilometerPackages()), h.logger)
}

func (h *Handlers) ListVehicleCategories(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIVehicleCategories(h.catalogService.VehicleCategories()), h.logger)
}
