package models

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ConfirmBookingRequest запрос на подтверждение бронирования после оплаты
type ConfirmBookingRequest struct {
	PaymentReference *string `json:"paymentReference,omitempty"`
}

// PaymentSucceededRequest входящее событие об успешной оплате
type PaymentSucceededRequest struct {
	EventID          string
	BookingID        int64
	PaymentReference *string
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
	Limit  uint64  `json:"limit,omitempty"`
	Offset uint64  `json:"offset,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	SpaceID     int64  `json:"spaceId"`
	UserID      int64  `json:"userId"`
	Date        string `json:"date"`      // "2025-10-15"
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "12:00"
	PeopleCount int    `json:"peopleCount"`
	Status      string `json:"status"`
	TotalPrice  string `json:"totalPrice"` // "90.00"

	PaymentReference *string `json:"paymentReference,omitempty"`
	PaidAt           *string `json:"paidAt,omitempty"` // ISO 8601 format

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SpaceID:            b.SpaceID,
		UserID:             b.UserID,
		Date:               b.Date().Format(domain.DateFormat),
		StartTime:          b.StartTime().String(),
		EndTime:            b.EndTime().String(),
		PeopleCount:        b.PeopleCount,
		Status:             string(b.Status),
		TotalPrice:         b.TotalPrice.StringFixed(2),
		PaymentReference:   b.PaymentReference,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.PaidAt = formatTime(b.PaidAt)
	resp.CancelledAt = formatTime(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
