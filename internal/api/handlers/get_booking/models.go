package get_booking

import (
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// BookingDetailsResponse карточка бронирования для владельца
type BookingDetailsResponse struct {
	models.BookingResponse

	DurationHours   string `json:"durationHours"`   // "2.00"
	AwaitingPayment bool   `json:"awaitingPayment"` // pending, ждёт подтверждения оплаты
	Cancellable     bool   `json:"cancellable"`
}

// FromServiceResponse дополняет бронирование вычисляемыми полями
func FromServiceResponse(b *models.BookingResponse) *BookingDetailsResponse {
	status := domain.BookingStatus(b.Status)

	return &BookingDetailsResponse{
		BookingResponse: *b,
		DurationHours:   domain.DurationHours(types.TimeString(b.StartTime), types.TimeString(b.EndTime)).StringFixed(2),
		AwaitingPayment: status == domain.StatusPending,
		Cancellable:     status != domain.StatusCancelled,
	}
}
