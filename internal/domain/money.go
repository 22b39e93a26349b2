package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "EUR"
	moneyScale      = 2
)

// DefaultVATRate is the German standard VAT rate applied to every catalog price.
var DefaultVATRate = decimal.RequireFromString("0.19")

// Money is an immutable net amount with its VAT rate. VAT and gross are derived
// from the rounded net exactly once, at construction.
type Money struct {
	net      decimal.Decimal
	vatRate  decimal.Decimal
	vat      decimal.Decimal
	currency string
}

// NewMoneyFromNet builds a EUR amount from a net value.
func NewMoneyFromNet(amount, vatRate decimal.Decimal) (Money, error) {
	return NewMoneyFromNetIn(amount, vatRate, DefaultCurrency)
}

// NewMoneyFromNetIn builds an amount in the given ISO 4217 currency.
func NewMoneyFromNetIn(amount, vatRate decimal.Decimal, currency string) (Money, error) {
	err := ensure().
		that(!amount.IsNegative(), "amount", "cannot be negative, got %s", amount).
		that(validVATRate(vatRate), "vatRate", "must be between 0 and 1, got %s", vatRate).
		that(len(currency) == 3, "currency", "must be a 3-letter ISO code, got %q", currency).
		result()
	if err != nil {
		return Money{}, err
	}

	net := amount.RoundBank(moneyScale)
	return Money{
		net:      net,
		vatRate:  vatRate,
		vat:      net.Mul(vatRate).RoundBank(moneyScale),
		currency: currency,
	}, nil
}

// NewMoneyFromGross back-solves the net amount from a gross value.
func NewMoneyFromGross(amount, vatRate decimal.Decimal) (Money, error) {
	err := ensure().
		that(!amount.IsNegative(), "amount", "cannot be negative, got %s", amount).
		that(validVATRate(vatRate), "vatRate", "must be between 0 and 1, got %s", vatRate).
		result()
	if err != nil {
		return Money{}, err
	}
	net := amount.Div(decimal.NewFromInt(1).Add(vatRate))
	return NewMoneyFromNet(net, vatRate)
}

// MustMoneyFromNet is NewMoneyFromNet for compiled-in catalog prices.
func MustMoneyFromNet(amount decimal.Decimal, vatRate decimal.Decimal) Money {
	m, err := NewMoneyFromNet(amount, vatRate)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns 0.00 EUR at the given rate.
func ZeroMoney(vatRate decimal.Decimal) Money {
	return MustMoneyFromNet(decimal.Zero, vatRate)
}

// eur parses a catalog literal at the default VAT rate.
func eur(amount string) Money {
	return MustMoneyFromNet(decimal.RequireFromString(amount), DefaultVATRate)
}

func validVATRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}

func (m Money) Net() decimal.Decimal { return m.net }
func (m Money) VATRate() decimal.Decimal { return m.vatRate }
func (m Money) VAT() decimal.Decimal { return m.vat }
func (m Money) Gross() decimal.Decimal { return m.net.Add(m.vat) }
func (m Money) Currency() string { return m.currency }

func (m Money) IsZero() bool {
	return m.net.IsZero()
}

// Add sums the net amounts and re-derives VAT on the result. Gross values are
// never summed.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewCurrencyMismatchError(m.currency, other.currency)
	}
	if !m.vatRate.Equal(other.vatRate) {
		return Money{}, NewVATRateMismatchError(m.vatRate.String(), other.vatRate.String())
	}
	return NewMoneyFromNetIn(m.net.Add(other.net), m.vatRate, m.currency)
}

// Multiply scales the net amount by n.
func (m Money) Multiply(n int) (Money, error) {
	return m.MultiplyDecimal(decimal.NewFromInt(int64(n)))
}

// MultiplyDecimal scales the net amount by factor and rounds the result once.
func (m Money) MultiplyDecimal(factor decimal.Decimal) (Money, error) {
	return NewMoneyFromNetIn(m.net.Mul(factor), m.vatRate, m.currency)
}

// Equal reports whether net, VAT rate and currency all match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency &&
		m.net.Equal(other.net) &&
		m.vatRate.Equal(other.vatRate)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.net.StringFixed(moneyScale), m.currency)
}

// SumMoney adds amounts left to right, starting from zero at the given rate.
func SumMoney(vatRate decimal.Decimal, amounts ...Money) (Money, error) {
	total := ZeroMoney(vatRate)
	for _, a := range amounts {
		var err error
		total, err = total.Add(a)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
