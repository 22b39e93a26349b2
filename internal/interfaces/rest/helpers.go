package rest

import (
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Money struct {
	Net      string `json:"net"`
	VAT      string `json:"vat"`
	Gross    string `json:"gross"`
	VATRate  string `json:"vat_rate"`
	Currency string `json:"currency"`
}

func ToAPIMoney(m domain.Money) Money {
	return Money{
		Net:      m.Net().StringFixed(2),
		VAT:      m.VAT().StringFixed(2),
		Gross:    m.Gross().StringFixed(2),
		VATRate:  m.VATRate().String(),
		Currency: m.Currency(),
	}
}

type CrossBorderValidation struct {
	IsValid                     bool     `json:"is_valid"`
	Issues                      []string `json:"issues"`
	RequiresPermit              bool     `json:"requires_permit"`
	RequiresAdditionalInsurance bool     `json:"requires_additional_insurance"`
}

func ToAPICrossBorderValidation(r domain.CrossBorderValidationResult) CrossBorderValidation {
	return CrossBorderValidation{
		IsValid:                     r.IsValid,
		Issues:                      nonNil(r.Issues),
		RequiresPermit:              r.RequiresPermit,
		RequiresAdditionalInsurance: r.RequiresAdditionalInsurance,
	}
}

type LicenseValidation struct {
	IsValid  bool     `json:"is_valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

func ToAPILicenseValidation(r domain.LicenseValidationResult) LicenseValidation {
	return LicenseValidation{
		IsValid:  r.IsValid,
		Issues:   nonNil(r.Issues),
		Warnings: nonNil(r.Warnings),
	}
}

type QuoteResult struct {
	Days                   int                   `json:"days"`
	BaseRentalCost         Money                 `json:"base_rental_cost"`
	CrossBorderSurcharge   Money                 `json:"cross_border_surcharge"`
	InsuranceCost          Money                 `json:"insurance_cost"`
	KilometerPackageCost   Money                 `json:"kilometer_package_cost"`
	KilometerOverageCharge Money                 `json:"kilometer_overage_charge"`
	TotalPrice             Money                 `json:"total_price"`
	CrossBorder            CrossBorderValidation `json:"cross_border"`
	License                LicenseValidation     `json:"license"`
	PaymentDueDate         openapi_types.Date    `json:"payment_due_date"`
	Bookable               bool                  `json:"bookable"`
}

func ToAPIQuoteResult(r domain.QuoteResult) QuoteResult {
	return QuoteResult{
		Days:                   r.Days,
		BaseRentalCost:         ToAPIMoney(r.BaseRentalCost),
		CrossBorderSurcharge:   ToAPIMoney(r.CrossBorderSurcharge),
		InsuranceCost:          ToAPIMoney(r.InsuranceCost),
		KilometerPackageCost:   ToAPIMoney(r.KilometerPackageCost),
		KilometerOverageCharge: ToAPIMoney(r.KilometerOverageCharge),
		TotalPrice:             ToAPIMoney(r.TotalPrice),
		CrossBorder:            ToAPICrossBorderValidation(r.CrossBorderValidation),
		License:                ToAPILicenseValidation(r.LicenseValidation),
		PaymentDueDate:         openapi_types.Date{Time: r.PaymentDueDate},
		Bookable:               r.Bookable,
	}
}

type Quote struct {
	ID               string      `json:"id"`
	Policy           string      `json:"policy"`
	Category         string      `json:"category"`
	PickupAt         string      `json:"pickup_at"`
	ReturnAt         string      `json:"return_at"`
	Destinations     []string    `json:"destinations"`
	Insurance        string      `json:"insurance"`
	KilometerPackage string      `json:"kilometer_package"`
	EstimatedKm      int         `json:"estimated_km"`
	PaymentTermsDays int         `json:"payment_terms_days"`
	Fingerprint      string      `json:"fingerprint"`
	CreatedAt        string      `json:"created_at"`
	ExpiresAt        string      `json:"expires_at"`
	Result           QuoteResult `json:"result"`
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"

func ToAPIQuote(q *domain.Quote) Quote {
	destinations := make([]string, len(q.Destinations))
	for i, c := range q.Destinations {
		destinations[i] = c.String()
	}
	return Quote{
		ID:               q.ID,
		Policy:           q.PolicyName,
		Category:         q.CategoryCode,
		PickupAt:         q.PickupAt.Format(timestampLayout),
		ReturnAt:         q.ReturnAt.Format(timestampLayout),
		Destinations:     destinations,
		Insurance:        q.InsuranceType.String(),
		KilometerPackage: q.KilometerPackage.String(),
		EstimatedKm:      q.EstimatedKm,
		PaymentTermsDays: q.PaymentTermsDays,
		Fingerprint:      q.Fingerprint,
		CreatedAt:        q.CreatedAt.Format(timestampLayout),
		ExpiresAt:        q.ExpiresAt.Format(timestampLayout),
		Result:           ToAPIQuoteResult(q.Result),
	}
}

type TravelRule struct {
	Country                     string `json:"country"`
	Name                        string `json:"name"`
	Restriction                 string `json:"restriction"`
	DailySurcharge              *Money `json:"daily_surcharge,omitempty"`
	RequiresAdditionalInsurance bool   `json:"requires_additional_insurance"`
	Reason                      string `json:"reason,omitempty"`
}

type Policy struct {
	Name           string       `json:"name"`
	Allowed        []TravelRule `json:"allowed"`
	PermitRequired []TravelRule `json:"permit_required"`
	Restricted     []TravelRule `json:"restricted"`
	Prohibited     []TravelRule `json:"prohibited"`
}

func ToAPIPolicy(p *domain.CrossBorderPolicy) Policy {
	out := Policy{
		Name:           p.Name(),
		Allowed:        []TravelRule{},
		PermitRequired: []TravelRule{},
		Restricted:     []TravelRule{},
		Prohibited:     []TravelRule{},
	}
	for _, r := range p.Rules() {
		rule := TravelRule{
			Country:                     r.Country().String(),
			Name:                        r.Country().Name(),
			Restriction:                 r.Restriction().String(),
			RequiresAdditionalInsurance: r.RequiresAdditionalInsurance(),
			Reason:                      r.RestrictionReason(),
		}
		if fee, ok := r.DailySurcharge(); ok {
			m := ToAPIMoney(fee)
			rule.DailySurcharge = &m
		}

		switch r.Restriction() {
		case domain.Allowed:
			out.Allowed = append(out.Allowed, rule)
		case domain.PermitRequired:
			out.PermitRequired = append(out.PermitRequired, rule)
		case domain.Restricted:
			out.Restricted = append(out.Restricted, rule)
		case domain.Prohibited:
			out.Prohibited = append(out.Prohibited, rule)
		}
	}
	return out
}

type InsurancePackage struct {
	Type                     string `json:"type"`
	Deductible               Money  `json:"deductible"`
	DailySurcharge           Money  `json:"daily_surcharge"`
	IncludesTheftProtection  bool   `json:"includes_theft_protection"`
	IncludesGlassAndTires    bool   `json:"includes_glass_and_tires"`
	IncludesPersonalAccident bool   `json:"includes_personal_accident"`
}

func ToAPIInsurancePackages(pkgs []domain.InsurancePackage) []InsurancePackage {
	out := make([]InsurancePackage, len(pkgs))
	for i, p := range pkgs {
		out[i] = InsurancePackage{
			Type:                     p.Type.String(),
			Deductible:               ToAPIMoney(p.Deductible),
			DailySurcharge:           ToAPIMoney(p.DailySurcharge),
			IncludesTheftProtection:  p.IncludesTheftProtection,
			IncludesGlassAndTires:    p.IncludesGlassAndTires,
			IncludesPersonalAccident: p.IncludesPersonalAccident,
		}
	}
	return out
}

type KilometerPackage struct {
	Type             string `json:"type"`
	DailyLimitKm     *int   `json:"daily_limit_km,omitempty"`
	AdditionalKmRate *Money `json:"additional_km_rate,omitempty"`
	DailyPrice       Money  `json:"daily_price"`
	Unlimited        bool   `json:"unlimited"`
}

func ToAPIKilometerPackages(pkgs []domain.KilometerPackage) []KilometerPackage {
	out := make([]KilometerPackage, len(pkgs))
	for i, p := range pkgs {
		out[i] = KilometerPackage{
			Type:       p.Type.String(),
			DailyPrice: ToAPIMoney(p.DailyPrice),
			Unlimited:  p.IsUnlimited(),
		}
		if limit, ok := p.DailyLimitKm(); ok {
			out[i].DailyLimitKm = &limit
		}
		if rate, ok := p.AdditionalKmRate(); ok {
			m := ToAPIMoney(rate)
			out[i].AdditionalKmRate = &m
		}
	}
	return out
}

type VehicleCategory struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DailyRate    Money  `json:"daily_rate"`
	MinYearsHeld int    `json:"min_years_held"`
}

func ToAPIVehicleCategories(cats []domain.VehicleCategory) []VehicleCategory {
	out := make([]VehicleCategory, len(cats))
	for i, c := range cats {
		out[i] = VehicleCategory{
			Code:         c.Code,
			Name:         c.Name,
			DailyRate:    ToAPIMoney(c.DailyRate),
			MinYearsHeld: c.MinYearsHeld,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
