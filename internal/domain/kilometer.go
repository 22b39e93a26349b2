package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type KilometerPackageType int

const (
	Limited100 KilometerPackageType = iota
	Limited200
	Unlimited
)

var kilometerTypeNames = []string{"Limited100", "Limited200", "Unlimited"}

func (t KilometerPackageType) String() string {
	if t.valid() {
		return kilometerTypeNames[t]
	}
	return fmt.Sprintf("KilometerPackageType(%d)", int(t))
}

func (t KilometerPackageType) valid() bool {
	return t >= Limited100 && t <= Unlimited
}

func ParseKilometerPackageType(s string) (KilometerPackageType, error) {
	for i, name := range kilometerTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return KilometerPackageType(i), nil
		}
	}
	return 0, NewInvalidArgumentError("kilometerPackageType", fmt.Sprintf("unknown kilometer package %q", s))
}

// KilometerPackage is a daily mileage allowance. Unlimited packages carry
// neither a limit nor an overage rate.
type KilometerPackage struct {
	Type             KilometerPackageType
	dailyLimitKm     int
	additionalKmRate Money
	DailyPrice       Money
}

var kilometerCatalog = [...]KilometerPackage{
	Limited100: {Type: Limited100, dailyLimitKm: 100, additionalKmRate: eur("0.20"), DailyPrice: eur("0.00")},
	Limited200: {Type: Limited200, dailyLimitKm: 200, additionalKmRate: eur("0.15"), DailyPrice: eur("6.90")},
	Unlimited:  {Type: Unlimited, DailyPrice: eur("14.90")},
}

func KilometerPackageFromType(t KilometerPackageType) (KilometerPackage, error) {
	if !t.valid() {
		return KilometerPackage{}, NewOutOfRangeError("kilometerPackageType", int(t))
	}
	return kilometerCatalog[t], nil
}

func KilometerPackages() []KilometerPackage {
	return append([]KilometerPackage(nil), kilometerCatalog[:]...)
}

func (p KilometerPackage) IsUnlimited() bool {
	return p.Type == Unlimited
}

// DailyLimitKm returns the per-day allowance; ok is false for Unlimited.
func (p KilometerPackage) DailyLimitKm() (int, bool) {
	if p.IsUnlimited() {
		return 0, false
	}
	return p.dailyLimitKm, true
}

// AdditionalKmRate returns the overage price per km; ok is false for Unlimited.
func (p KilometerPackage) AdditionalKmRate() (Money, bool) {
	if p.IsUnlimited() {
		return Money{}, false
	}
	return p.additionalKmRate, true
}

// TotalAllowance is the daily limit times days; ok is false for Unlimited.
func (p KilometerPackage) TotalAllowance(days int) (int, bool) {
	if p.IsUnlimited() {
		return 0, false
	}
	if days < 0 {
		days = 0
	}
	return p.dailyLimitKm * days, true
}

// CalculateAdditionalCharge prices the kilometers driven beyond the allowance.
func (p KilometerPackage) CalculateAdditionalCharge(days, actualKm int) Money {
	allowance, limited := p.TotalAllowance(days)
	if !limited || actualKm <= allowance {
		return ZeroMoney(DefaultVATRate)
	}

	over := decimal.NewFromInt(int64(actualKm - allowance))
	charge, err := p.additionalKmRate.MultiplyDecimal(over)
	if err != nil {
		panic(err)
	}
	return charge
}

// CalculatePackageCost is the package's own daily price times days.
func (p KilometerPackage) CalculatePackageCost(days int) Money {
	if days <= 0 {
		return ZeroMoney(p.DailyPrice.VATRate())
	}
	cost, err := p.DailyPrice.Multiply(days)
	if err != nil {
		panic(err)
	}
	return cost
}
