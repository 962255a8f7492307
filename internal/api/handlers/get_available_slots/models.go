package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date          string          `json:"date"`
	SpaceID       int64           `json:"spaceId"`
	TotalCapacity int             `json:"totalCapacity"`
	Slots         []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DurationHours     string `json:"durationHours"`  // "2.5"
	PricePerPerson    string `json:"pricePerPerson"` // "37.50"
	RemainingCapacity int    `json:"remainingCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:         slot.StartTime.String(),
			EndTime:           slot.EndTime.String(),
			DurationHours:     slot.DurationHours.String(),
			PricePerPerson:    slot.PricePerPerson.StringFixed(2),
			RemainingCapacity: slot.RemainingCapacity,
			TotalCapacity:     slot.TotalCapacity,
		}
	}

	return &AvailableSlotsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		SpaceID:       resp.SpaceID,
		TotalCapacity: resp.TotalCapacity,
		Slots:         slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// Пустая дата передаётся как нулевое значение, use case подставит сегодняшний день
func ToUseCaseRequest(spaceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	var date time.Time
	if dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &getAvailableSlots.Request{
		SpaceID: spaceID,
		Date:    date,
	}, nil
}
