package domain

import (
	"errors"
	"fmt"
	"time"
)

// QuoteRequest is one fully parsed quote request. Every field has already
// passed its value-object checks.
type QuoteRequest struct {
	Category         VehicleCategory
	Period           RentalPeriod
	Destinations     []CountryCode
	Insurance        InsurancePackage
	KilometerPackage KilometerPackage
	EstimatedKm      int
	License          DriversLicense
	Policy           *CrossBorderPolicy
	PaymentTerms     PaymentTerms
}

// QuoteResult is the priced and compliance-checked outcome of a request.
// Rule violations live in the two validation results, never in an error.
type QuoteResult struct {
	Days                   int
	BaseRentalCost         Money
	CrossBorderSurcharge   Money
	CrossBorderValidation  CrossBorderValidationResult
	InsuranceCost          Money
	KilometerPackageCost   Money
	KilometerOverageCharge Money
	LicenseValidation      LicenseValidationResult
	TotalPrice             Money
	PaymentDueDate         time.Time
	Bookable               bool
}

// EvaluateQuote runs every catalog against the request. It is a pure
// function: two calls with equal requests return equal results.
func EvaluateQuote(req QuoteRequest) QuoteResult {
	days := req.Period.Days()
	pickup := CivilDate(req.Period.PickupDate())

	crossBorder := req.Policy.Validate(req.Destinations)
	if crossBorder.RequiresAdditionalInsurance && !req.Insurance.CoversAtLeast(Vollkasko) {
		crossBorder.Issues = append(crossBorder.Issues, "destination requires at least Vollkasko coverage")
		crossBorder.IsValid = false
	}

	license := req.License.ValidateForGermanRental(pickup)
	if req.Category.MinYearsHeld > minYearsHeld && !req.License.HasBeenHeldForYears(req.Category.MinYearsHeld, pickup) {
		license.Issues = append(license.Issues, categoryHoldIssue(req.Category))
		license.IsValid = false
	}

	result := QuoteResult{
		Days:                   days,
		BaseRentalCost:         req.Category.CalculateBaseCost(days),
		CrossBorderSurcharge:   req.Policy.CalculateTotalSurcharge(req.Destinations, days),
		CrossBorderValidation:  crossBorder,
		InsuranceCost:          req.Insurance.CalculateCost(days),
		KilometerPackageCost:   req.KilometerPackage.CalculatePackageCost(days),
		KilometerOverageCharge: req.KilometerPackage.CalculateAdditionalCharge(days, req.EstimatedKm),
		LicenseValidation:      license,
		PaymentDueDate:         req.PaymentTerms.CalculateDueDate(pickup),
		Bookable:               crossBorder.IsValid && license.IsValid,
	}

	total, err := SumMoney(DefaultVATRate,
		result.BaseRentalCost,
		result.CrossBorderSurcharge,
		result.InsuranceCost,
		result.KilometerPackageCost,
		result.KilometerOverageCharge,
	)
	if err != nil {
		// catalog prices share one currency and rate
		panic(err)
	}
	result.TotalPrice = total
	return result
}

func categoryHoldIssue(c VehicleCategory) string {
	return fmt.Sprintf("license must have been held for at least %d years for category %s", c.MinYearsHeld, c.Code)
}

// Quote is an issued quote, kept for audit until it expires.
type Quote struct {
	ID               string
	PolicyName       string
	CategoryCode     string
	PickupAt         time.Time
	ReturnAt         time.Time
	Destinations     []CountryCode
	InsuranceType    InsuranceType
	KilometerPackage KilometerPackageType
	EstimatedKm      int
	PaymentTermsDays int
	Result           QuoteResult
	Fingerprint      string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

func NewQuote(id string, req QuoteRequest, result QuoteResult, fingerprint string, createdAt time.Time, validity time.Duration) (*Quote, error) {
	if id == "" {
		return nil, errors.New("quote ID is required")
	}
	if req.Policy == nil {
		return nil, errors.New("quote policy is required")
	}
	if validity <= 0 {
		return nil, NewInvalidArgumentError("validity", "must be positive")
	}

	return &Quote{
		ID:               id,
		PolicyName:       req.Policy.Name(),
		CategoryCode:     req.Category.Code,
		PickupAt:         req.Period.PickupDate(),
		ReturnAt:         req.Period.ReturnDate(),
		Destinations:     append([]CountryCode(nil), req.Destinations...),
		InsuranceType:    req.Insurance.Type,
		KilometerPackage: req.KilometerPackage.Type,
		EstimatedKm:      req.EstimatedKm,
		PaymentTermsDays: req.PaymentTerms.DaysUntilDue(),
		Result:           result,
		Fingerprint:      fingerprint,
		CreatedAt:        createdAt.UTC(),
		ExpiresAt:        createdAt.UTC().Add(validity),
	}, nil
}

func (q *Quote) IsExpired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}
