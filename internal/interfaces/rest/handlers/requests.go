package handlers

import (
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type LicenseRequest struct {
	Number       string             `json:"number" validate:"required"`
	IssueCountry string             `json:"issue_country" validate:"required"`
	IssueDate    openapi_types.Date `json:"issue_date"`
	ExpiryDate   openapi_types.Date `json:"expiry_date"`
}

func (l LicenseRequest) toCommand() services.LicenseCommand {
	return services.LicenseCommand{
		Number:       l.Number,
		IssueCountry: l.IssueCountry,
		IssueDate:    l.IssueDate.Time,
		ExpiryDate:   l.ExpiryDate.Time,
	}
}

type CreateQuoteRequest struct {
	Policy           string         `json:"policy"`
	Category         string         `json:"category" validate:"required"`
	PickupAt         time.Time      `json:"pickup_at" validate:"required"`
	ReturnAt         time.Time      `json:"return_at" validate:"required"`
	Destinations     []string       `json:"destinations"`
	Insurance        string         `json:"insurance" validate:"required"`
	KilometerPackage string         `json:"kilometer_package" validate:"required"`
	EstimatedKm      int            `json:"estimated_km" validate:"gte=0"`
	PaymentTermsDays int            `json:"payment_terms_days" validate:"gte=0,lte=90"`
	License          LicenseRequest `json:"license"`
}

func (r CreateQuoteRequest) toCommand() services.QuoteCommand {
	return services.QuoteCommand{
		PolicyName:       r.Policy,
		CategoryCode:     r.Category,
		PickupAt:         r.PickupAt,
		ReturnAt:         r.ReturnAt,
		Destinations:     r.Destinations,
		InsuranceType:    r.Insurance,
		KilometerPackage: r.KilometerPackage,
		EstimatedKm:      r.EstimatedKm,
		PaymentTermsDays: r.PaymentTermsDays,
		License:          r.License.toCommand(),
	}
}

type RouteRequest struct {
	Countries []string `json:"countries" validate:"required,min=1"`
	Days      int      `json:"days" validate:"gte=0"`
}

type ValidateLicenseRequest struct {
	License    LicenseRequest      `json:"license"`
	RentalDate *openapi_types.Date `json:"rental_date,omitempty"`
}

type DueDateRequest struct {
	DaysUntilDue int                `json:"days_until_due" validate:"gte=0,lte=90"`
	InvoiceDate  openapi_types.Date `json:"invoice_date"`
}

type SurchargeResponse struct {
	Policy    string     `json:"policy"`
	Countries []string   `json:"countries"`
	Days      int        `json:"days"`
	Total     rest.Money `json:"total"`
}

type DueDateResponse struct {
	DaysUntilDue int                `json:"days_until_due"`
	Terms        string             `json:"terms"`
	DueDate      openapi_types.Date `json:"due_date"`
}
