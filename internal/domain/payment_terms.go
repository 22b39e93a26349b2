package domain

import (
	"fmt"
	"time"
)

const maxDaysUntilDue = 90

type PaymentTerms struct {
	daysUntilDue int
}

var (
	PaymentTermsImmediate = PaymentTerms{daysUntilDue: 0}
	PaymentTermsNet7      = PaymentTerms{daysUntilDue: 7}
	PaymentTermsNet14     = PaymentTerms{daysUntilDue: 14}
	PaymentTermsNet30     = PaymentTerms{daysUntilDue: 30}
	PaymentTermsNet60     = PaymentTerms{daysUntilDue: 60}
)

func NewPaymentTerms(days int) (PaymentTerms, error) {
	if days < 0 || days > maxDaysUntilDue {
		return PaymentTerms{}, NewInvalidArgumentError("daysUntilDue",
			fmt.Sprintf("must be between 0 and %d, got %d", maxDaysUntilDue, days))
	}
	return PaymentTerms{daysUntilDue: days}, nil
}

func (t PaymentTerms) DaysUntilDue() int {
	return t.daysUntilDue
}

// CalculateDueDate adds the net days to the invoice's civil date.
func (t PaymentTerms) CalculateDueDate(invoiceDate time.Time) time.Time {
	return CivilDate(invoiceDate).AddDate(0, 0, t.daysUntilDue)
}

func (t PaymentTerms) String() string {
	if t.daysUntilDue == 0 {
		return "Immediate"
	}
	return fmt.Sprintf("Net%d", t.daysUntilDue)
}
