package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// statusAliases maps external payment vocabulary onto canonical statuses
var statusAliases = map[string]BookingStatus{
	"paid": StatusConfirmed,
}

// transitions is the allowed lifecycle: pending -> confirmed -> cancelled, pending -> cancelled
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// ParseBookingStatus converts a string into a canonical BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := statusAliases[normalized]; ok {
		return alias, nil
	}
	status := BookingStatus(normalized)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// CanTransitionTo returns true if the lifecycle allows moving from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a reservation of part of a space capacity over a half-open interval [StartAt, EndAt)
type Booking struct {
	ID          int64
	SpaceID     int64
	UserID      int64
	StartAt     time.Time
	EndAt       time.Time
	PeopleCount int
	Status      BookingStatus
	TotalPrice  decimal.Decimal

	PaymentReference *string
	PaidAt           *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsConfirmed returns true if the booking has been confirmed by payment
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsOwnedBy returns true if userID made the booking
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// Overlaps reports whether the booking interval intersects [start, end).
// Touching endpoints do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// Date returns the booking date
func (b *Booking) Date() time.Time {
	return DateOnly(b.StartAt)
}

// StartTime returns the booking start as time of day
func (b *Booking) StartTime() types.TimeString {
	return types.NewTimeString(b.StartAt)
}

// EndTime returns the booking end as time of day ("24:00" for a booking ending at midnight)
func (b *Booking) EndTime() types.TimeString {
	if !DateOnly(b.EndAt).Equal(DateOnly(b.StartAt)) && b.EndAt.Equal(DateOnly(b.EndAt)) {
		return types.TimeString("24:00")
	}
	return types.NewTimeString(b.EndAt)
}

// SumCommittedPeople sums people over active bookings overlapping [start, end)
func SumCommittedPeople(bookings []*Booking, start, end time.Time) int {
	total := 0
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			total += b.PeopleCount
		}
	}
	return total
}

// UserBookingsFilter filter for listing bookings of a user
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus
	Limit  uint64
	Offset uint64
}
