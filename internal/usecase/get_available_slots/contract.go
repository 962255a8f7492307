package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// SpaceProvider источник данных о пространствах (PostgreSQL или SpaceService)
type SpaceProvider interface {
	GetByID(ctx context.Context, spaceID int64) (*domain.Space, error)
}

// Calendar календарь доступности
type Calendar interface {
	OpenWindows(ctx context.Context, spaceID int64, date time.Time) ([]*domain.OpenWindow, error)
}

// Occupancy учёт занятой вместимости
type Occupancy interface {
	DaySnapshot(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
