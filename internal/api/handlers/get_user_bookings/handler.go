package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidQuery  = "некорректные параметры запроса"
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

// Handle GET /api/v1/users/me/bookings
// Query params: status (optional), limit (default 50, max 100), offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /users/me/bookings - Invalid query: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	if err := handlers.ValidateStruct(query); err != nil {
		h.logger.Warn("GET /users/me/bookings - Validation failed: user_id=%d, %v", userID, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidQuery,
			map[string]interface{}{"errors": err})
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), query.ToServiceRequest(userID))
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /users/me/bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /users/me/bookings - Failed to get bookings: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
