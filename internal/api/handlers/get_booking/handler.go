package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "бронирование принадлежит другому пользователю"
)

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

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видно только его владельцу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	rawID := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: user_id=%d, id=%q", userID, rawID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrUnauthorized):
		h.logger.Warn("GET /bookings/{id} - Not the owner: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	default:
		h.logger.Error("GET /bookings/{id} - Failed to load booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - booking_id=%d, user_id=%d, status=%s", bookingID, userID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(booking))
}
