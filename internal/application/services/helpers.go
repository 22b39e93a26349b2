package services

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

func ComputeHash(v interface{}) string {
	data := fmt.Sprintf("%+v", v)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

type quoteFingerprint struct {
	Policy      string
	Category    string
	Pickup      string
	Return      string
	Countries   string
	Insurance   string
	Km          string
	EstimatedKm int
	TermDays    int
	License     string
}

// isFingerprint accepts lowercase hex sha256 digests.
func isFingerprint(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// fingerprint hashes the normalized request, so requests that differ only in
// case, whitespace or country order share a fingerprint.
func fingerprint(req domain.QuoteRequest) string {
	countries := make([]string, 0, len(req.Destinations))
	seen := make(map[domain.CountryCode]bool, len(req.Destinations))
	for _, c := range req.Destinations {
		if !seen[c] {
			seen[c] = true
			countries = append(countries, c.String())
		}
	}
	sort.Strings(countries)

	return ComputeHash(quoteFingerprint{
		Policy:      req.Policy.Name(),
		Category:    req.Category.Code,
		Pickup:      req.Period.PickupDate().Format(time.RFC3339),
		Return:      req.Period.ReturnDate().Format(time.RFC3339),
		Countries:   strings.Join(countries, ","),
		Insurance:   req.Insurance.Type.String(),
		Km:          req.KilometerPackage.Type.String(),
		EstimatedKm: req.EstimatedKm,
		TermDays:    req.PaymentTerms.DaysUntilDue(),
		License:     req.License.Number(),
	})
}

func parseLicense(cmd LicenseCommand) (domain.DriversLicense, error) {
	return domain.NewDriversLicense(cmd.Number, cmd.IssueCountry, cmd.IssueDate, cmd.ExpiryDate)
}

func parsePolicy(name string) (*domain.CrossBorderPolicy, error) {
	if name == "" {
		name = domain.StandardPolicyName
	}
	return domain.PolicyByName(name)
}

// parseQuoteCommand turns a command into domain values, stopping at the first
// malformed field.
func parseQuoteCommand(cmd QuoteCommand) (domain.QuoteRequest, error) {
	var req domain.QuoteRequest
	var err error

	if req.Policy, err = parsePolicy(cmd.PolicyName); err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.Category, err = domain.VehicleCategoryFromCode(cmd.CategoryCode); err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.Period, err = domain.NewRentalPeriod(cmd.PickupAt, cmd.ReturnAt); err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.Destinations, err = domain.ParseCountryCodes(cmd.Destinations); err != nil {
		return req, application.NewInvalidInputError(err)
	}

	insuranceType, err := domain.ParseInsuranceType(cmd.InsuranceType)
	if err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.Insurance, err = domain.InsurancePackageFromType(insuranceType); err != nil {
		return req, application.NewInvalidInputError(err)
	}

	kmType, err := domain.ParseKilometerPackageType(cmd.KilometerPackage)
	if err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.KilometerPackage, err = domain.KilometerPackageFromType(kmType); err != nil {
		return req, application.NewInvalidInputError(err)
	}

	if cmd.EstimatedKm < 0 {
		return req, application.NewInvalidInputError(domain.NewOutOfRangeError("estimatedKm", cmd.EstimatedKm))
	}
	req.EstimatedKm = cmd.EstimatedKm

	if req.PaymentTerms, err = domain.NewPaymentTerms(cmd.PaymentTermsDays); err != nil {
		return req, application.NewInvalidInputError(err)
	}
	if req.License, err = parseLicense(cmd.License); err != nil {
		return req, application.NewInvalidInputError(err)
	}

	return req, nil
}
