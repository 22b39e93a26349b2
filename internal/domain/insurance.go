package domain

import (
	"fmt"
	"strings"
)

// InsuranceType is ordered by coverage: a higher value covers strictly more.
type InsuranceType int

const (
	Haftpflicht InsuranceType = iota
	Teilkasko
	Vollkasko
	VollkaskoZeroDeductible
)

// Marketing names used on the booking pages.
const (
	InsuranceBasic    = Haftpflicht
	InsuranceStandard = Teilkasko
	InsuranceComfort  = Vollkasko
	InsurancePremium  = VollkaskoZeroDeductible
)

var insuranceTypeNames = []string{"Haftpflicht", "Teilkasko", "Vollkasko", "VollkaskoZeroDeductible"}

var insuranceAliases = map[string]InsuranceType{
	"basic":    Haftpflicht,
	"standard": Teilkasko,
	"comfort":  Vollkasko,
	"premium":  VollkaskoZeroDeductible,
}

func (t InsuranceType) String() string {
	if t.valid() {
		return insuranceTypeNames[t]
	}
	return fmt.Sprintf("InsuranceType(%d)", int(t))
}

func (t InsuranceType) valid() bool {
	return t >= Haftpflicht && t <= VollkaskoZeroDeductible
}

// ParseInsuranceType accepts the German tier name or its marketing alias.
func ParseInsuranceType(s string) (InsuranceType, error) {
	key := strings.TrimSpace(s)
	for i, name := range insuranceTypeNames {
		if strings.EqualFold(name, key) {
			return InsuranceType(i), nil
		}
	}
	if t, ok := insuranceAliases[strings.ToLower(key)]; ok {
		return t, nil
	}
	return 0, NewInvalidArgumentError("insuranceType", fmt.Sprintf("unknown insurance type %q", s))
}

type InsurancePackage struct {
	Type                     InsuranceType
	Deductible               Money
	DailySurcharge           Money
	IncludesTheftProtection  bool
	IncludesGlassAndTires    bool
	IncludesPersonalAccident bool
}

var insuranceCatalog = [...]InsurancePackage{
	Haftpflicht: {
		Type:           Haftpflicht,
		Deductible:     eur("2500.00"),
		DailySurcharge: eur("0.00"),
	},
	Teilkasko: {
		Type:                    Teilkasko,
		Deductible:              eur("1000.00"),
		DailySurcharge:          eur("9.90"),
		IncludesTheftProtection: true,
	},
	Vollkasko: {
		Type:                    Vollkasko,
		Deductible:              eur("500.00"),
		DailySurcharge:          eur("19.90"),
		IncludesTheftProtection: true,
		IncludesGlassAndTires:   true,
	},
	VollkaskoZeroDeductible: {
		Type:                     VollkaskoZeroDeductible,
		Deductible:               eur("0.00"),
		DailySurcharge:           eur("29.90"),
		IncludesTheftProtection:  true,
		IncludesGlassAndTires:    true,
		IncludesPersonalAccident: true,
	},
}

// InsurancePackageFromType returns the catalog package for t.
func InsurancePackageFromType(t InsuranceType) (InsurancePackage, error) {
	if !t.valid() {
		return InsurancePackage{}, NewOutOfRangeError("insuranceType", int(t))
	}
	return insuranceCatalog[t], nil
}

// InsurancePackages lists the catalog from lowest to highest coverage.
func InsurancePackages() []InsurancePackage {
	return append([]InsurancePackage(nil), insuranceCatalog[:]...)
}

// NewCustomInsurancePackage prices a tier differently while keeping the
// coverage flags of the catalog tier.
func NewCustomInsurancePackage(t InsuranceType, deductible, dailySurcharge Money) (InsurancePackage, error) {
	base, err := InsurancePackageFromType(t)
	if err != nil {
		return InsurancePackage{}, err
	}
	base.Deductible = deductible
	base.DailySurcharge = dailySurcharge
	return base, nil
}

// CalculateCost is the daily surcharge times days, or zero for days <= 0.
func (p InsurancePackage) CalculateCost(days int) Money {
	if days <= 0 {
		return ZeroMoney(p.DailySurcharge.VATRate())
	}
	cost, err := p.DailySurcharge.Multiply(days)
	if err != nil {
		// days > 0 on a non-negative amount cannot fail
		panic(err)
	}
	return cost
}

// CompareCoverageTo orders packages by tier like a comparator.
func (p InsurancePackage) CompareCoverageTo(other InsurancePackage) int {
	switch {
	case p.Type < other.Type:
		return -1
	case p.Type > other.Type:
		return 1
	}
	return 0
}

// IsZeroDeductible holds for the top tier only. A custom Vollkasko package
// priced with a zero deductible is still Vollkasko.
func (p InsurancePackage) IsZeroDeductible() bool {
	return p.Type == VollkaskoZeroDeductible
}

// CoversAtLeast reports whether p is at or above tier t.
func (p InsurancePackage) CoversAtLeast(t InsuranceType) bool {
	return p.Type >= t
}
