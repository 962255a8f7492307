package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate       = "дата не может быть в прошлом"
	msgSpaceNotFound  = "пространство не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/slots
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("GET /spaces/{id}/slots - Invalid space ID: %s", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	useCaseReq, err := ToUseCaseRequest(spaceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/slots - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /spaces/{id}/slots - Date in the past: space_id=%d, date=%s", spaceID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/slots - Invalid input: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidSpaceID)

		default:
			h.logger.Error("GET /spaces/{id}/slots - Failed to get slots: space_id=%d, date=%s, error=%v",
				spaceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/slots - Slots retrieved successfully: space_id=%d, date=%s, slots_count=%d",
		spaceID, result.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
