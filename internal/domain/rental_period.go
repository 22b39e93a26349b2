package domain

import (
	"time"
)

type RentalPeriod struct {
	pickup time.Time
	ret    time.Time
}

// NewRentalPeriod requires the return to be strictly after pickup.
func NewRentalPeriod(pickup, returnAt time.Time) (RentalPeriod, error) {
	err := ensure().
		that(!pickup.IsZero(), "pickupDate", "is required").
		that(!returnAt.IsZero(), "returnDate", "is required").
		that(returnAt.After(pickup), "returnDate", "must be after pickup %s", pickup.Format(time.RFC3339)).
		result()
	if err != nil {
		return RentalPeriod{}, err
	}
	return RentalPeriod{pickup: pickup.UTC(), ret: returnAt.UTC()}, nil
}

func (p RentalPeriod) PickupDate() time.Time { return p.pickup }
func (p RentalPeriod) ReturnDate() time.Time { return p.ret }

// Days counts every started 24-hour block, so a rental is at least one day.
func (p RentalPeriod) Days() int {
	d := p.ret.Sub(p.pickup)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}
