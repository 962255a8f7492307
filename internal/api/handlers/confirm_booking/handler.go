package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidState       = "бронирование отменено и не может быть подтверждено"
)

// ConfirmRequest тело запроса от платёжного сервиса
type ConfirmRequest struct {
	PaymentReference *string `json:"paymentReference,omitempty" validate:"omitempty,min=1,max=255"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/bookings/{bookingId}/confirm
// Вызывается платёжным сервисом; повторный вызов возвращает то же бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid booking ID: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /internal/bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/confirm - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Confirm(r.Context(), bookingID, &models.ConfirmBookingRequest{
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /internal/bookings/{id}/confirm - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /internal/bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/bookings/{id}/confirm - Booking confirmed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
