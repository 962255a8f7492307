package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

const pricePrecision = 2

var minutesPerHour = decimal.NewFromInt(60)

// DurationHours returns end - start in hours
func DurationHours(start, end types.TimeString) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Minutes() - start.Minutes())).Div(minutesPerHour)
}

// PricePerPerson returns the per-person price of an interval: price_per_hour * duration_hours
func PricePerPerson(pricePerHour decimal.Decimal, start, end types.TimeString) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(end.Minutes() - start.Minutes()))
	return pricePerHour.Mul(minutes).Div(minutesPerHour).Round(pricePrecision)
}

// TotalPrice returns the amount charged for a booking: PricePerPerson (rounded to cents) * people_count
func TotalPrice(pricePerHour decimal.Decimal, start, end types.TimeString, peopleCount int) decimal.Decimal {
	return PricePerPerson(pricePerHour, start, end).Mul(decimal.NewFromInt(int64(peopleCount)))
}
