package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
// ID пользователя берётся из заголовка X-User-ID
type CreateBookingRequest struct {
	SpaceID     int64  `json:"spaceId" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,date"`       // "2025-10-15"
	StartTime   string `json:"startTime" validate:"required,clock"` // "10:00"
	EndTime     string `json:"endTime" validate:"required,clock"`   // "12:00"
	PeopleCount int    `json:"peopleCount" validate:"required,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	SpaceID        int64  `json:"spaceId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	PeopleCount    int    `json:"peopleCount"`
	Status         string `json:"status"`
	PricePerPerson string `json:"pricePerPerson"`
	TotalPrice     string `json:"totalPrice"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат полей уже проверен валидатором
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		SpaceID:     r.SpaceID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		PeopleCount: r.PeopleCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		SpaceID:        resp.SpaceID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		PeopleCount:    resp.PeopleCount,
		Status:         resp.Status,
		PricePerPerson: resp.PricePerPerson.StringFixed(2),
		TotalPrice:     resp.TotalPrice.StringFixed(2),
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
