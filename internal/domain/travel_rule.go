package domain

import (
	"fmt"
	"strings"
)

// TravelRestriction is the entry status of a rental vehicle into a country.
type TravelRestriction int

const (
	Allowed TravelRestriction = iota
	PermitRequired
	Restricted
	Prohibited
)

var restrictionNames = map[TravelRestriction]string{
	Allowed:        "ALLOWED",
	PermitRequired: "PERMIT_REQUIRED",
	Restricted:     "RESTRICTED",
	Prohibited:     "PROHIBITED",
}

func (r TravelRestriction) String() string {
	if name, ok := restrictionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("TravelRestriction(%d)", int(r))
}

// IsAllowed is true when entry is permitted, with or without a permit.
func (r TravelRestriction) IsAllowed() bool {
	return r == Allowed || r == PermitRequired
}

// ParseTravelRestriction accepts the String() form, case-insensitively.
func ParseTravelRestriction(s string) (TravelRestriction, error) {
	for r, name := range restrictionNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return 0, NewInvalidArgumentError("restriction", fmt.Sprintf("unknown travel restriction %q", s))
}

// CountryTravelRule is one country's entry in a cross-border policy.
// Invariants: a surcharge exists only when entry is allowed, and a reason
// exists exactly when it is not.
type CountryTravelRule struct {
	country                     CountryCode
	restriction                 TravelRestriction
	dailySurcharge              *Money
	requiresAdditionalInsurance bool
	restrictionReason           string
}

// AllowedRule permits entry; surcharge may be nil for surcharge-free countries.
func AllowedRule(country CountryCode, surcharge *Money) CountryTravelRule {
	return CountryTravelRule{
		country:        country,
		restriction:    Allowed,
		dailySurcharge: copyMoney(surcharge),
	}
}

func PermitRequiredRule(country CountryCode, surcharge Money, requiresAdditionalInsurance bool) CountryTravelRule {
	return CountryTravelRule{
		country:                     country,
		restriction:                 PermitRequired,
		dailySurcharge:              &surcharge,
		requiresAdditionalInsurance: requiresAdditionalInsurance,
	}
}

// RestrictedRule panics on an empty reason: catalog rules are compiled in, so
// a missing reason is a programming error.
func RestrictedRule(country CountryCode, reason string, requiresAdditionalInsurance bool) CountryTravelRule {
	mustHaveReason(country, reason)
	return CountryTravelRule{
		country:                     country,
		restriction:                 Restricted,
		requiresAdditionalInsurance: requiresAdditionalInsurance,
		restrictionReason:           reason,
	}
}

func ProhibitedRule(country CountryCode, reason string) CountryTravelRule {
	mustHaveReason(country, reason)
	return CountryTravelRule{
		country:           country,
		restriction:       Prohibited,
		restrictionReason: reason,
	}
}

func mustHaveReason(country CountryCode, reason string) {
	if strings.TrimSpace(reason) == "" {
		panic(fmt.Sprintf("travel rule for %s: restriction reason is required", country))
	}
}

func copyMoney(m *Money) *Money {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func (r CountryTravelRule) Country() CountryCode { return r.country }
func (r CountryTravelRule) Restriction() TravelRestriction { return r.restriction }
func (r CountryTravelRule) RequiresAdditionalInsurance() bool { return r.requiresAdditionalInsurance }
func (r CountryTravelRule) RestrictionReason() string { return r.restrictionReason }

// DailySurcharge returns the per-day surcharge and whether one is defined.
func (r CountryTravelRule) DailySurcharge() (Money, bool) {
	if r.dailySurcharge == nil {
		return Money{}, false
	}
	return *r.dailySurcharge, true
}
