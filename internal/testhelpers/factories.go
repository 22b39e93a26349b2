package testhelpers

import (
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

// DefaultQuoteCommand returns a bookable Standard-policy quote command for a
// five-day Swiss trip starting next week.
func DefaultQuoteCommand() services.QuoteCommand {
	pickup := domain.Today().AddDate(0, 0, 7).Add(9 * time.Hour)
	return services.QuoteCommand{
		PolicyName:       "Standard",
		CategoryCode:     "CDMR",
		PickupAt:         pickup,
		ReturnAt:         pickup.AddDate(0, 0, 5),
		Destinations:     []string{"de", "ch"},
		InsuranceType:    "Teilkasko",
		KilometerPackage: "Limited100",
		EstimatedKm:      600,
		PaymentTermsDays: 14,
		License:          DefaultLicenseCommand(),
	}
}

// DefaultLicenseCommand returns a German license held for ten years.
func DefaultLicenseCommand() services.LicenseCommand {
	today := domain.Today()
	return services.LicenseCommand{
		Number:       "B072RRE2I55",
		IssueCountry: "Germany",
		IssueDate:    today.AddDate(-10, 0, 0),
		ExpiryDate:   today.AddDate(5, 0, 0),
	}
}

// NewQuote evaluates DefaultQuoteCommand into a domain quote created at
// createdAt, without going through a service.
func NewQuote(id string, createdAt time.Time, validity time.Duration) *domain.Quote {
	cmd := DefaultQuoteCommand()
	period, _ := domain.NewRentalPeriod(cmd.PickupAt, cmd.ReturnAt)
	category, _ := domain.VehicleCategoryFromCode(cmd.CategoryCode)
	insurance, _ := domain.InsurancePackageFromType(domain.Teilkasko)
	km, _ := domain.KilometerPackageFromType(domain.Limited100)
	license, err := domain.NewDriversLicense(cmd.License.Number, cmd.License.IssueCountry, cmd.License.IssueDate, cmd.License.ExpiryDate)
	if err != nil {
		panic(err)
	}

	req := domain.QuoteRequest{
		Category:         category,
		Period:           period,
		Destinations:     []domain.CountryCode{domain.Germany, domain.Switzerland},
		Insurance:        insurance,
		KilometerPackage: km,
		EstimatedKm:      cmd.EstimatedKm,
		License:          license,
		Policy:           domain.StandardPolicy(),
		PaymentTerms:     domain.PaymentTermsNet14,
	}

	q, err := domain.NewQuote(id, req, domain.EvaluateQuote(req), "fp-"+id, createdAt, validity)
	if err != nil {
		panic(err)
	}
	return q
}
