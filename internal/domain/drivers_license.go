package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	minLicenseNumberLen = 5
	maxLicenseNumberLen = 20
	minYearsHeld        = 1
)

// DriversLicense is a license as presented at pickup. Dates are civil dates
// normalized to midnight UTC.
type DriversLicense struct {
	number       string
	issueCountry string
	issueDate    time.Time
	expiryDate   time.Time
}

// LicenseValidationResult collects the German-market checks for one rental.
// Warnings holds advisories that are also listed in Issues but do not affect
// IsValid.
type LicenseValidationResult struct {
	IsValid  bool
	Issues   []string
	Warnings []string
}

// CivilDate drops the time of day, in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current civil date.
func Today() time.Time {
	return CivilDate(time.Now())
}

// NewDriversLicense validates and normalizes a license against today's date.
func NewDriversLicense(number, issueCountry string, issueDate, expiryDate time.Time) (DriversLicense, error) {
	return NewDriversLicenseAsOf(number, issueCountry, issueDate, expiryDate, Today())
}

// NewDriversLicenseAsOf is NewDriversLicense with an explicit "today".
func NewDriversLicenseAsOf(number, issueCountry string, issueDate, expiryDate, today time.Time) (DriversLicense, error) {
	normalized := strings.ToUpper(strings.TrimSpace(number))
	country := strings.TrimSpace(issueCountry)
	issue, expiry := CivilDate(issueDate), CivilDate(expiryDate)

	err := ensure().
		that(len(normalized) >= minLicenseNumberLen && len(normalized) <= maxLicenseNumberLen,
			"licenseNumber", "must be %d-%d characters, got %d", minLicenseNumberLen, maxLicenseNumberLen, len(normalized)).
		that(isAlphanumeric(normalized), "licenseNumber", "must contain only letters and digits").
		that(country != "", "issueCountry", "is required").
		that(!issue.After(CivilDate(today)), "issueDate", "cannot be in the future, got %s", issue.Format(DateLayout)).
		that(expiry.After(issue), "expiryDate", "must be after issue date %s, got %s", issue.Format(DateLayout), expiry.Format(DateLayout)).
		result()
	if err != nil {
		return DriversLicense{}, err
	}

	return DriversLicense{
		number:       normalized,
		issueCountry: country,
		issueDate:    issue,
		expiryDate:   expiry,
	}, nil
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !isASCIILetter(b) && (b < '0' || b > '9') {
			return false
		}
	}
	return true
}

func (l DriversLicense) Number() string { return l.number }
func (l DriversLicense) IssueCountry() string { return l.issueCountry }
func (l DriversLicense) IssueDate() time.Time { return l.issueDate }
func (l DriversLicense) ExpiryDate() time.Time { return l.expiryDate }

// IsValid reports whether the license has not expired as of today.
func (l DriversLicense) IsValid() bool {
	return !l.expiryDate.Before(Today())
}

// IsValidOn reports whether date falls inside [issueDate, expiryDate].
func (l DriversLicense) IsValidOn(date time.Time) bool {
	d := CivilDate(date)
	return !d.Before(l.issueDate) && !d.After(l.expiryDate)
}

// YearsHeld counts complete years between issue and asOf. Never negative.
func (l DriversLicense) YearsHeld(asOf time.Time) int {
	d := CivilDate(asOf)
	years := d.Year() - l.issueDate.Year()
	if d.Month() < l.issueDate.Month() ||
		(d.Month() == l.issueDate.Month() && d.Day() < l.issueDate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (l DriversLicense) HasBeenHeldForYears(years int, asOf time.Time) bool {
	return l.YearsHeld(asOf) >= years
}

// IsEuLicense matches the issuing country against EU/EEA states by ISO code,
// English name or native name.
func (l DriversLicense) IsEuLicense() bool {
	_, ok := euEEAIssuers[strings.ToLower(l.issueCountry)]
	return ok
}

// ValidateForGermanRental applies the German-market rules for a rental
// starting on rentalDate.
func (l DriversLicense) ValidateForGermanRental(rentalDate time.Time) LicenseValidationResult {
	d := CivilDate(rentalDate)
	result := LicenseValidationResult{Issues: []string{}, Warnings: []string{}}
	hardFailures := 0

	if l.expiryDate.Before(d) {
		result.Issues = append(result.Issues, fmt.Sprintf("license expires on %s, before the rental date %s",
			l.expiryDate.Format(DateLayout), d.Format(DateLayout)))
		hardFailures++
	}
	if !l.HasBeenHeldForYears(minYearsHeld, d) {
		result.Issues = append(result.Issues, "license must have been held for at least 1 year")
		hardFailures++
	}
	if !l.IsEuLicense() {
		advisory := "license issued outside the EU/EEA: an International Driving Permit is required in addition"
		result.Issues = append(result.Issues, advisory)
		result.Warnings = append(result.Warnings, advisory)
	}

	result.IsValid = hardFailures == 0
	return result
}

func (l DriversLicense) IsValidForGermanRental(rentalDate time.Time) bool {
	return l.ValidateForGermanRental(rentalDate).IsValid
}

var euEEAIssuers = buildEUEEAIssuers()

func buildEUEEAIssuers() map[string]struct{} {
	names := []string{
		"at", "austria", "österreich",
		"be", "belgium", "belgië", "belgique",
		"bg", "bulgaria", "българия",
		"hr", "croatia", "hrvatska",
		"cy", "cyprus", "κύπρος",
		"cz", "czech republic", "czechia", "česko",
		"dk", "denmark", "danmark",
		"ee", "estonia", "eesti",
		"fi", "finland", "suomi",
		"fr", "france",
		"de", "germany", "deutschland",
		"gr", "greece", "ελλάδα",
		"hu", "hungary", "magyarország",
		"ie", "ireland", "éire",
		"it", "italy", "italia",
		"lv", "latvia", "latvija",
		"lt", "lithuania", "lietuva",
		"lu", "luxembourg", "lëtzebuerg",
		"mt", "malta",
		"nl", "netherlands", "nederland",
		"pl", "poland", "polska",
		"pt", "portugal",
		"ro", "romania", "românia",
		"sk", "slovakia", "slovensko",
		"si", "slovenia", "slovenija",
		"es", "spain", "españa",
		"se", "sweden", "sverige",
		"is", "iceland", "ísland",
		"li", "liechtenstein",
		"no", "norway", "norge",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
