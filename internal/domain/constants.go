package domain

// Business validation constants
const (
	MinPeopleCount              = 1
	MaxCancellationReasonLength = 500
	MaxPaymentReferenceLength   = 255
	DefaultOverviewDays         = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses bookings in these statuses no longer hold capacity
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses bookings in these statuses hold capacity (pending included)
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// Booking lifecycle event types
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)
