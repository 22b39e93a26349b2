package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CrossBorderPolicy is a named, immutable set of travel rules, one per country.
type CrossBorderPolicy struct {
	name  string
	rules map[CountryCode]CountryTravelRule
	order []CountryCode
}

// CrossBorderValidationResult is built fresh for every Validate call.
type CrossBorderValidationResult struct {
	IsValid                     bool
	Issues                      []string
	RequiresPermit              bool
	RequiresAdditionalInsurance bool
}

// NewCrossBorderPolicy builds a policy from rules, keeping their order for
// listings. A country may appear only once.
func NewCrossBorderPolicy(name string, rules []CountryTravelRule) (*CrossBorderPolicy, error) {
	if name == "" {
		return nil, NewInvalidArgumentError("name", "policy name is required")
	}

	p := &CrossBorderPolicy{
		name:  name,
		rules: make(map[CountryCode]CountryTravelRule, len(rules)),
		order: make([]CountryCode, 0, len(rules)),
	}
	for _, r := range rules {
		if _, dup := p.rules[r.Country()]; dup {
			return nil, NewDuplicateCountryError(r.Country())
		}
		p.rules[r.Country()] = r
		p.order = append(p.order, r.Country())
	}
	return p, nil
}

func (p *CrossBorderPolicy) Name() string {
	return p.name
}

// GetRule returns the rule for country; ok is false when the policy does not
// cover it.
func (p *CrossBorderPolicy) GetRule(country CountryCode) (CountryTravelRule, bool) {
	r, ok := p.rules[country]
	return r, ok
}

func (p *CrossBorderPolicy) IsAllowed(country CountryCode) bool {
	r, ok := p.rules[country]
	return ok && r.Restriction().IsAllowed()
}

func (p *CrossBorderPolicy) RequiresPermit(country CountryCode) bool {
	r, ok := p.rules[country]
	return ok && r.Restriction() == PermitRequired
}

// GetDailySurcharge returns the country's daily surcharge, if it has one.
func (p *CrossBorderPolicy) GetDailySurcharge(country CountryCode) (Money, bool) {
	r, ok := p.rules[country]
	if !ok {
		return Money{}, false
	}
	return r.DailySurcharge()
}

// CalculateTotalSurcharge sums the daily net surcharge of each distinct
// country and multiplies the sum by days. VAT is derived once on the total.
// Countries without a surcharge, or not covered at all, contribute zero.
func (p *CrossBorderPolicy) CalculateTotalSurcharge(countries []CountryCode, days int) Money {
	if days <= 0 {
		return ZeroMoney(DefaultVATRate)
	}

	seen := make(map[CountryCode]struct{}, len(countries))
	dailyNet := decimal.Zero
	for _, c := range countries {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		if s, ok := p.GetDailySurcharge(c); ok {
			dailyNet = dailyNet.Add(s.Net())
		}
	}

	return MustMoneyFromNet(dailyNet.Mul(decimal.NewFromInt(int64(days))), DefaultVATRate)
}

// Validate checks every requested country and reports one issue per country
// that is not covered, restricted or prohibited. It never stops early.
func (p *CrossBorderPolicy) Validate(countries []CountryCode) CrossBorderValidationResult {
	result := CrossBorderValidationResult{Issues: []string{}}

	for _, c := range countries {
		rule, ok := p.rules[c]
		if !ok {
			result.Issues = append(result.Issues,
				fmt.Sprintf("country %s not covered by policy %s", c, p.name))
			continue
		}

		switch rule.Restriction() {
		case Prohibited:
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s not permitted: %s", c.Name(), rule.RestrictionReason()))
		case Restricted:
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s requires special approval: %s", c.Name(), rule.RestrictionReason()))
		case PermitRequired:
			result.RequiresPermit = true
		}

		if rule.RequiresAdditionalInsurance() {
			result.RequiresAdditionalInsurance = true
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result
}

// Rules returns every rule in catalog order.
func (p *CrossBorderPolicy) Rules() []CountryTravelRule {
	out := make([]CountryTravelRule, 0, len(p.order))
	for _, c := range p.order {
		out = append(out, p.rules[c])
	}
	return out
}

func (p *CrossBorderPolicy) AllowedCountries() []CountryCode {
	return p.countriesWhere(func(r TravelRestriction) bool { return r == Allowed })
}

func (p *CrossBorderPolicy) PermitRequiredCountries() []CountryCode {
	return p.countriesWhere(func(r TravelRestriction) bool { return r == PermitRequired })
}

func (p *CrossBorderPolicy) RestrictedCountries() []CountryCode {
	return p.countriesWhere(func(r TravelRestriction) bool { return r == Restricted })
}

func (p *CrossBorderPolicy) ProhibitedCountries() []CountryCode {
	return p.countriesWhere(func(r TravelRestriction) bool { return r == Prohibited })
}

func (p *CrossBorderPolicy) countriesWhere(match func(TravelRestriction) bool) []CountryCode {
	out := []CountryCode{}
	for _, c := range p.order {
		if match(p.rules[c].Restriction()) {
			out = append(out, c)
		}
	}
	return out
}
