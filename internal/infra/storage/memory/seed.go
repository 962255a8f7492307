package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// SeedDemo наполняет хранилище демонстрационным пространством
// с окнами 09:00-12:00 и 13:00-18:00 на days дней вперёд от from
func (s *Store) SeedDemo(from time.Time, days int) {
	s.AddSpace(&domain.Space{
		ID:           1,
		OwnerID:      1,
		Name:         "Meeting room",
		Capacity:     10,
		PricePerHour: decimal.NewFromInt(15),
		Status:       domain.SpaceStatusAvailable,
	})

	start := domain.DateOnly(from)
	schedule := &domain.AvailabilitySchedule{
		ID:        1,
		SpaceID:   1,
		Name:      "Default",
		StartDate: start,
		IsActive:  true,
		CreatedAt: from,
	}

	windows := make([]*domain.OpenWindow, 0, days*2)
	var id int64
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		id++
		windows = append(windows, &domain.OpenWindow{ID: id, Date: date, StartTime: "09:00", EndTime: "12:00", IsAvailable: true})
		id++
		windows = append(windows, &domain.OpenWindow{ID: id, Date: date, StartTime: "13:00", EndTime: "18:00", IsAvailable: true})
	}

	s.AddSchedule(schedule, windows...)
}
