package handlers

import (
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (h *Handlers) ValidateLicense(w http.ResponseWriter, r *http.Request) {
	var req ValidateLicenseRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd := services.LicenseCheckCommand{License: req.License.toCommand()}
	if req.RentalDate != nil {
		cmd.RentalDate = req.RentalDate.Time
	}

	result, err := h.complianceService.ValidateLicense(cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPILicenseValidation(result), h.logger)
}

func (h *Handlers) CalculateDueDate(w http.ResponseWriter, r *http.Request) {
	var req DueDateRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.complianceService.DueDate(services.DueDateCommand{
		DaysUntilDue: req.DaysUntilDue,
		InvoiceDate:  req.InvoiceDate.Time,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, DueDateResponse{
		DaysUntilDue: req.DaysUntilDue,
		Terms:        result.Terms.String(),
		DueDate:      openapi_types.Date{Time: result.DueDate},
	}, h.logger)
}
