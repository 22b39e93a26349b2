package services

import (
	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

type ComplianceService struct{}

func NewComplianceService() *ComplianceService {
	return &ComplianceService{}
}

// ValidateLicense runs the German-market checks. A zero rental date means
// today.
func (s *ComplianceService) ValidateLicense(cmd LicenseCheckCommand) (domain.LicenseValidationResult, error) {
	l, err := parseLicense(cmd.License)
	if err != nil {
		return domain.LicenseValidationResult{}, application.NewInvalidInputError(err)
	}

	rentalDate := cmd.RentalDate
	if rentalDate.IsZero() {
		rentalDate = domain.Today()
	}
	return l.ValidateForGermanRental(rentalDate), nil
}

func (s *ComplianceService) DueDate(cmd DueDateCommand) (DueDateResult, error) {
	terms, err := domain.NewPaymentTerms(cmd.DaysUntilDue)
	if err != nil {
		return DueDateResult{}, application.NewInvalidInputError(err)
	}
	if cmd.InvoiceDate.IsZero() {
		return DueDateResult{}, application.NewInvalidInputError(domain.NewInvalidArgumentError("invoiceDate", "is required"))
	}
	return DueDateResult{Terms: terms, DueDate: terms.CalculateDueDate(cmd.InvoiceDate)}, nil
}
