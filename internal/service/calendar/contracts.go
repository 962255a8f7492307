package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Repository интерфейс хранилища расписаний доступности
// Реализации: PostgreSQL, MongoDB, in-memory
type Repository interface {
	GetActiveSchedule(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilitySchedule, error)
	GetOpenWindows(ctx context.Context, scheduleID int64, date time.Time) ([]*domain.OpenWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
