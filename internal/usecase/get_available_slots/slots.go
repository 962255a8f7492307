package get_available_slots

import (
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/occupancy"
)

// buildSlots строит слоты из открытых окон
// Каждое окно рассматривается отдельно, пересекающиеся окна не объединяются.
// Слот попадает в результат, только если у него осталась свободная вместимость
func buildSlots(space *domain.Space, windows []*domain.OpenWindow, bookings []*domain.Booking) []domain.Slot {
	slots := make([]domain.Slot, 0, len(windows))

	for _, w := range windows {
		committed := occupancy.CommittedFrom(bookings, w.StartAt(), w.EndAt())
		remaining := domain.RemainingCapacity(space.Capacity, committed)
		if remaining <= 0 {
			continue
		}

		slots = append(slots, domain.Slot{
			StartTime:         w.StartTime,
			EndTime:           w.EndTime,
			DurationHours:     domain.DurationHours(w.StartTime, w.EndTime),
			PricePerPerson:    domain.PricePerPerson(space.PricePerHour, w.StartTime, w.EndTime),
			RemainingCapacity: remaining,
			TotalCapacity:     space.Capacity,
		})
	}

	return slots
}
