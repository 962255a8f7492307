package domain

import "time"

// BookingEvent is a lifecycle notification emitted after a booking change is committed
type BookingEvent struct {
	Type             string    `json:"type"`
	BookingID        int64     `json:"booking_id"`
	SpaceID          int64     `json:"space_id"`
	UserID           int64     `json:"user_id"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	PeopleCount      int       `json:"people_count"`
	Status           string    `json:"status"`
	TotalPrice       string    `json:"total_price"`
	PaymentReference *string   `json:"payment_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewBookingEvent builds an event snapshot of booking
func NewBookingEvent(eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:             eventType,
		BookingID:        b.ID,
		SpaceID:          b.SpaceID,
		UserID:           b.UserID,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		PeopleCount:      b.PeopleCount,
		Status:           string(b.Status),
		TotalPrice:       b.TotalPrice.StringFixed(2),
		PaymentReference: b.PaymentReference,
		OccurredAt:       at,
	}
}
