package cancel_booking

import (
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model (тело опционально)
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
