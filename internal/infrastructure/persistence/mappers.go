package persistence

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// QuoteModel - Database representation shared by the SQL stores.
// The priced result is kept as a JSON document; the columns next to it exist
// for querying and reporting.
type QuoteModel struct {
	ID               string
	PolicyName       string
	CategoryCode     string
	PickupAt         time.Time
	ReturnAt         time.Time
	Destinations     string
	InsuranceType    string
	KilometerPackage string
	EstimatedKm      int
	PaymentTermsDays int
	Bookable         bool
	TotalNet         decimal.Decimal
	Currency         string
	Result           []byte
	Fingerprint      string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

type moneyDocument struct {
	Net      decimal.Decimal `json:"net"`
	VATRate  decimal.Decimal `json:"vat_rate"`
	Currency string          `json:"currency"`
}

type resultDocument struct {
	Days                   int           `json:"days"`
	BaseRentalCost         moneyDocument `json:"base_rental_cost"`
	CrossBorderSurcharge   moneyDocument `json:"cross_border_surcharge"`
	InsuranceCost          moneyDocument `json:"insurance_cost"`
	KilometerPackageCost   moneyDocument `json:"kilometer_package_cost"`
	KilometerOverageCharge moneyDocument `json:"kilometer_overage_charge"`
	TotalPrice             moneyDocument `json:"total_price"`

	CrossBorderValid            bool     `json:"cross_border_valid"`
	CrossBorderIssues           []string `json:"cross_border_issues"`
	RequiresPermit              bool     `json:"requires_permit"`
	RequiresAdditionalInsurance bool     `json:"requires_additional_insurance"`

	LicenseValid    bool     `json:"license_valid"`
	LicenseIssues   []string `json:"license_issues"`
	LicenseWarnings []string `json:"license_warnings"`

	PaymentDueDate string `json:"payment_due_date"`
	Bookable       bool   `json:"bookable"`
}

func toMoneyDocument(m domain.Money) moneyDocument {
	return moneyDocument{Net: m.Net(), VATRate: m.VATRate(), Currency: m.Currency()}
}

func (d moneyDocument) toDomain() (domain.Money, error) {
	return domain.NewMoneyFromNetIn(d.Net, d.VATRate, d.Currency)
}

// ToQuoteModel maps a domain quote to its row.
func ToQuoteModel(q *domain.Quote) (*QuoteModel, error) {
	r := q.Result
	doc := resultDocument{
		Days:                        r.Days,
		BaseRentalCost:              toMoneyDocument(r.BaseRentalCost),
		CrossBorderSurcharge:        toMoneyDocument(r.CrossBorderSurcharge),
		InsuranceCost:               toMoneyDocument(r.InsuranceCost),
		KilometerPackageCost:        toMoneyDocument(r.KilometerPackageCost),
		KilometerOverageCharge:      toMoneyDocument(r.KilometerOverageCharge),
		TotalPrice:                  toMoneyDocument(r.TotalPrice),
		CrossBorderValid:            r.CrossBorderValidation.IsValid,
		CrossBorderIssues:           r.CrossBorderValidation.Issues,
		RequiresPermit:              r.CrossBorderValidation.RequiresPermit,
		RequiresAdditionalInsurance: r.CrossBorderValidation.RequiresAdditionalInsurance,
		LicenseValid:                r.LicenseValidation.IsValid,
		LicenseIssues:               r.LicenseValidation.Issues,
		LicenseWarnings:             r.LicenseValidation.Warnings,
		PaymentDueDate:              r.PaymentDueDate.Format(domain.DateLayout),
		Bookable:                    r.Bookable,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode quote result: %w", err)
	}

	countries := make([]string, len(q.Destinations))
	for i, c := range q.Destinations {
		countries[i] = c.String()
	}

	return &QuoteModel{
		ID:               q.ID,
		PolicyName:       q.PolicyName,
		CategoryCode:     q.CategoryCode,
		PickupAt:         q.PickupAt,
		ReturnAt:         q.ReturnAt,
		Destinations:     strings.Join(countries, ","),
		InsuranceType:    q.InsuranceType.String(),
		KilometerPackage: q.KilometerPackage.String(),
		EstimatedKm:      q.EstimatedKm,
		PaymentTermsDays: q.PaymentTermsDays,
		Bookable:         r.Bookable,
		TotalNet:         r.TotalPrice.Net(),
		Currency:         r.TotalPrice.Currency(),
		Result:           payload,
		Fingerprint:      q.Fingerprint,
		CreatedAt:        q.CreatedAt,
		ExpiresAt:        q.ExpiresAt,
	}, nil
}

// ToDomainQuote maps a row back to a domain quote.
func ToDomainQuote(m QuoteModel) (*domain.Quote, error) {
	var doc resultDocument
	if err := json.Unmarshal(m.Result, &doc); err != nil {
		return nil, fmt.Errorf("decode quote result: %w", err)
	}

	insurance, err := domain.ParseInsuranceType(m.InsuranceType)
	if err != nil {
		return nil, err
	}
	km, err := domain.ParseKilometerPackageType(m.KilometerPackage)
	if err != nil {
		return nil, err
	}

	var destinations []domain.CountryCode
	if m.Destinations != "" {
		destinations, err = domain.ParseCountryCodes(strings.Split(m.Destinations, ","))
		if err != nil {
			return nil, err
		}
	}

	result := domain.QuoteResult{
		Days: doc.Days,
		CrossBorderValidation: domain.CrossBorderValidationResult{
			IsValid:                     doc.CrossBorderValid,
			Issues:                      nonNil(doc.CrossBorderIssues),
			RequiresPermit:              doc.RequiresPermit,
			RequiresAdditionalInsurance: doc.RequiresAdditionalInsurance,
		},
		LicenseValidation: domain.LicenseValidationResult{
			IsValid:  doc.LicenseValid,
			Issues:   nonNil(doc.LicenseIssues),
			Warnings: nonNil(doc.LicenseWarnings),
		},
		Bookable: doc.Bookable,
	}

	amounts := []struct {
		dst *domain.Money
		src moneyDocument
	}{
		{&result.BaseRentalCost, doc.BaseRentalCost},
		{&result.CrossBorderSurcharge, doc.CrossBorderSurcharge},
		{&result.InsuranceCost, doc.InsuranceCost},
		{&result.KilometerPackageCost, doc.KilometerPackageCost},
		{&result.KilometerOverageCharge, doc.KilometerOverageCharge},
		{&result.TotalPrice, doc.TotalPrice},
	}
	for _, a := range amounts {
		if *a.dst, err = a.src.toDomain(); err != nil {
			return nil, fmt.Errorf("decode quote amount: %w", err)
		}
	}

	if result.PaymentDueDate, err = time.Parse(domain.DateLayout, doc.PaymentDueDate); err != nil {
		return nil, fmt.Errorf("decode payment due date: %w", err)
	}

	return &domain.Quote{
		ID:               m.ID,
		PolicyName:       m.PolicyName,
		CategoryCode:     m.CategoryCode,
		PickupAt:         m.PickupAt.UTC(),
		ReturnAt:         m.ReturnAt.UTC(),
		Destinations:     destinations,
		InsuranceType:    insurance,
		KilometerPackage: km,
		EstimatedKm:      m.EstimatedKm,
		PaymentTermsDays: m.PaymentTermsDays,
		Result:           result,
		Fingerprint:      m.Fingerprint,
		CreatedAt:        m.CreatedAt.UTC(),
		ExpiresAt:        m.ExpiresAt.UTC(),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
