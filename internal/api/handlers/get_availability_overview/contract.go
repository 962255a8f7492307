package get_availability_overview

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

type CalendarService interface {
	Overview(ctx context.Context, spaceID int64, from time.Time, days int) ([]domain.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
