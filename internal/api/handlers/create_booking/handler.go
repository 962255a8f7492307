package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidRequest       = "некорректные параметры бронирования"
	msgSpaceNotFound        = "пространство не найдено"
	msgSpaceUnavailable     = "пространство недоступно для бронирования"
	msgSlotNotOpen          = "выбранный интервал не входит в открытое окно"
	msgInsufficientCapacity = "недостаточно свободных мест"
	msgUnavailable          = "бронирование временно недоступно, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, %v", userID, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequest,
			map[string]interface{}{"errors": err})
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *createBooking.InsufficientCapacityError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /bookings - Insufficient capacity: user_id=%d, space_id=%d, requested=%d, remaining=%d",
				userID, req.SpaceID, req.PeopleCount, capacityErr.Remaining)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgInsufficientCapacity,
				map[string]interface{}{"remainingCapacity": capacityErr.Remaining})

		case errors.Is(err, createBooking.ErrInsufficientCapacity):
			h.logger.Warn("POST /bookings - Insufficient capacity: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgInsufficientCapacity)

		case errors.Is(err, createBooking.ErrSlotNotOpen):
			h.logger.Warn("POST /bookings - Slot not open: user_id=%d, space_id=%d, %s %s-%s",
				userID, req.SpaceID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotNotOpen)

		case errors.Is(err, createBooking.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createBooking.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings - Space not bookable: space_id=%d", req.SpaceID)
			handlers.RespondConflict(w, msgSpaceUnavailable)

		case errors.Is(err, createBooking.ErrInvalidRequest):
			h.logger.Warn("POST /bookings - Invalid request: user_id=%d, space_id=%d, error=%v", userID, req.SpaceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createBooking.ErrUnavailable):
			h.logger.Warn("POST /bookings - Retries exhausted: user_id=%d, space_id=%d", userID, req.SpaceID)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, space_id=%d, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, space_id=%d",
		result.ID, userID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
