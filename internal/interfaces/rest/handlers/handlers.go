package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator"
)

type Handlers struct {
	quoteService      *services.QuoteService
	policyService     *services.PolicyService
	catalogService    *services.CatalogService
	complianceService *services.ComplianceService
	logger            *slog.Logger
	validate          *validator.Validate
}

func NewHandlers(
	quoteService *services.QuoteService,
	policyService *services.PolicyService,
	catalogService *services.CatalogService,
	complianceService *services.ComplianceService,
	logger *slog.Logger,
) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		quoteService:      quoteService,
		policyService:     policyService,
		catalogService:    catalogService,
		complianceService: complianceService,
		logger:            logger,
		validate:          validate,
	}
}

// Register mounts the API routes on r.
func (h *Handlers) Register(r chi.Router) {
	r.Post("/quotes", h.CreateQuote)
	r.Get("/quotes", h.ListQuotes)
	r.Get("/quotes/{quoteID}", h.GetQuote)

	r.Get("/policies", h.ListPolicies)
	r.Get("/policies/{name}", h.GetPolicy)
	r.Post("/policies/{name}/validate", h.ValidateRoute)
	r.Post("/policies/{name}/surcharge", h.CalculateSurcharge)

	r.Get("/insurance-packages", h.ListInsurancePackages)
	r.Get("/kilometer-packages", h.ListKilometerPackages)
	r.Get("/vehicle-categories", h.ListVehicleCategories)

	r.Post("/licenses/validate", h.ValidateLicense)
	r.Post("/payment-terms/due-date", h.CalculateDueDate)
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handlers) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return application.NewInvalidInputError(domain.NewInvalidArgumentError("body", err.Error()))
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return application.NewInvalidInputError(
				domain.NewInvalidArgumentError(fe.Field(), fmt.Sprintf("failed %q validation", fe.Tag())))
		}
		return application.NewInvalidInputError(err)
	}
	return nil
}
