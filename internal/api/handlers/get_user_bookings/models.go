package get_user_bookings

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

const defaultLimit = 50

// UserBookingsQuery параметры запроса истории бронирований
type UserBookingsQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed paid cancelled"`
	Limit  uint64 `json:"limit" validate:"lte=100"`
	Offset uint64 `json:"offset"`
}

// ParseQuery читает status, limit и offset из query string
func ParseQuery(values url.Values) (*UserBookingsQuery, error) {
	q := &UserBookingsQuery{
		Status: values.Get("status"),
		Limit:  defaultLimit,
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		q.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		q.Offset = offset
	}

	return q, nil
}

// ToServiceRequest конвертирует параметры в модель сервиса
func (q *UserBookingsQuery) ToServiceRequest(userID int64) *models.GetUserBookingsRequest {
	req := &models.GetUserBookingsRequest{
		UserID: userID,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.Status != "" {
		status := q.Status
		req.Status = &status
	}
	return req
}
