package domain

import (
	"strings"
)

// VehicleCategory is an ACRISS-coded car class with its daily base rate.
type VehicleCategory struct {
	Code         string
	Name         string
	DailyRate    Money
	MinYearsHeld int
}

var vehicleCategories = []VehicleCategory{
	{Code: "MBMR", Name: "Mini", DailyRate: eur("29.00"), MinYearsHeld: minYearsHeld},
	{Code: "ECMR", Name: "Economy", DailyRate: eur("35.00"), MinYearsHeld: minYearsHeld},
	{Code: "CDMR", Name: "Compact", DailyRate: eur("45.00"), MinYearsHeld: minYearsHeld},
	{Code: "IDAR", Name: "Intermediate", DailyRate: eur("59.00"), MinYearsHeld: minYearsHeld},
	{Code: "SDAR", Name: "Standard", DailyRate: eur("69.00"), MinYearsHeld: minYearsHeld},
	{Code: "FDAR", Name: "Full-size", DailyRate: eur("85.00"), MinYearsHeld: minYearsHeld},
	{Code: "PDAR", Name: "Premium", DailyRate: eur("119.00"), MinYearsHeld: 3},
	{Code: "LDAR", Name: "Luxury", DailyRate: eur("169.00"), MinYearsHeld: 3},
}

func VehicleCategoryFromCode(code string) (VehicleCategory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range vehicleCategories {
		if c.Code == normalized {
			return c, nil
		}
	}
	return VehicleCategory{}, NewNotFoundError("vehicle category", code)
}

func VehicleCategories() []VehicleCategory {
	return append([]VehicleCategory(nil), vehicleCategories...)
}

// CalculateBaseCost is the daily rate times days, or zero for days <= 0.
func (c VehicleCategory) CalculateBaseCost(days int) Money {
	if days <= 0 {
		return ZeroMoney(c.DailyRate.VATRate())
	}
	cost, err := c.DailyRate.Multiply(days)
	if err != nil {
		panic(err)
	}
	return cost
}
