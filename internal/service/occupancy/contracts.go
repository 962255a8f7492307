package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumPeopleOverlapping(ctx context.Context, spaceID int64, start, end time.Time) (int, error)
	GetActiveBySpaceAndRange(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Booking, error)
}
