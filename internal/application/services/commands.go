package services

import (
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

type LicenseCommand struct {
	Number       string
	IssueCountry string
	IssueDate    time.Time
	ExpiryDate   time.Time
}

type QuoteCommand struct {
	PolicyName       string
	CategoryCode     string
	PickupAt         time.Time
	ReturnAt         time.Time
	Destinations     []string
	InsuranceType    string
	KilometerPackage string
	EstimatedKm      int
	PaymentTermsDays int
	License          LicenseCommand
}

type RouteCommand struct {
	PolicyName string
	Countries  []string
	Days       int
}

type LicenseCheckCommand struct {
	License    LicenseCommand
	RentalDate time.Time
}

type DueDateCommand struct {
	DaysUntilDue int
	InvoiceDate  time.Time
}

type SurchargeResult struct {
	Policy string
	Total  domain.Money
}

type DueDateResult struct {
	Terms   domain.PaymentTerms
	DueDate time.Time
}
