package spaceservice

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Space модель пространства из SpaceService
type Space struct {
	ID           int64           `json:"id"`
	OwnerID      int64           `json:"owner_id"`
	Name         string          `json:"name"`
	Capacity     int             `json:"capacity"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Status       string          `json:"status"`
}

// ToDomain конвертирует ответ сервиса в domain модель
func (s *Space) ToDomain() *domain.Space {
	return &domain.Space{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Name:         s.Name,
		Capacity:     s.Capacity,
		PricePerHour: s.PricePerHour,
		Status:       domain.SpaceStatus(s.Status),
	}
}
