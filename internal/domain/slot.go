package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// Slot is a bookable offering derived from an open window. It is never persisted.
type Slot struct {
	StartTime         types.TimeString
	EndTime           types.TimeString
	DurationHours     decimal.Decimal
	PricePerPerson    decimal.Decimal
	RemainingCapacity int
	TotalCapacity     int
}

// IsFull returns true if the slot has no remaining capacity
func (s *Slot) IsFull() bool {
	return s.RemainingCapacity <= 0
}

// IsFullyAvailable returns true if nobody has booked the slot yet
func (s *Slot) IsFullyAvailable() bool {
	return s.RemainingCapacity == s.TotalCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	occupied := s.TotalCapacity - s.RemainingCapacity
	return float64(occupied) / float64(s.TotalCapacity) * 100
}

// RemainingCapacity returns capacity - committed, never negative
func RemainingCapacity(capacity, committed int) int {
	if committed >= capacity {
		return 0
	}
	return capacity - committed
}
