package get_availability_overview

import (
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// OverviewResponse HTTP response model
type OverviewResponse struct {
	SpaceID int64             `json:"spaceId"`
	Days    []DayAvailability `json:"days"`
}

// DayAvailability наличие открытых окон на дату
type DayAvailability struct {
	Date            string `json:"date"`
	HasAvailability bool   `json:"hasAvailability"`
}

// FromDomain конвертирует результат календаря в HTTP response
func FromDomain(spaceID int64, days []domain.DayAvailability) *OverviewResponse {
	resp := &OverviewResponse{
		SpaceID: spaceID,
		Days:    make([]DayAvailability, len(days)),
	}
	for i, d := range days {
		resp.Days[i] = DayAvailability{
			Date:            d.Date.Format(domain.DateFormat),
			HasAvailability: d.HasAvailability,
		}
	}
	return resp
}
