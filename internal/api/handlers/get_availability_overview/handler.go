package get_availability_overview

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgInvalidFrom    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays    = "некорректное количество дней"
)

type Handler struct {
	service     CalendarService
	defaultDays int
	maxDays     int
	now         func() time.Time
	logger      Logger
}

// NewHandler создает handler обзора доступности
// defaultDays используется, если days не передан; maxDays ограничивает запрос
func NewHandler(service CalendarService, defaultDays, maxDays int, logger Logger) *Handler {
	return &Handler{
		service:     service,
		defaultDays: defaultDays,
		maxDays:     maxDays,
		now:         time.Now,
		logger:      logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/availability
// Query params: from (optional, YYYY-MM-DD, по умолчанию сегодня), days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid space ID: %s", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	from := domain.DateOnly(h.now().UTC())
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /spaces/{id}/availability - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
	}

	days := h.defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 || days > h.maxDays {
			h.logger.Warn("GET /spaces/{id}/availability - Invalid days: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.service.Overview(r.Context(), spaceID, from, days)
	if err != nil {
		h.logger.Error("GET /spaces/{id}/availability - Failed to build overview: space_id=%d, error=%v", spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(spaceID, result))
}
