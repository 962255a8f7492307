package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error
}

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
	CommittedPeople(ctx context.Context, spaceID int64, start, end time.Time) (int, error)
}

// EventPublisher публикация событий жизненного цикла бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// MetricsCollector счётчики исходов попыток бронирования (опционально)
type MetricsCollector interface {
	IncBookingAttempt(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
// DoLocked повторяет транзакцию при дедлоке или таймауте блокировки
type TransactionManager interface {
	DoLocked(ctx context.Context, fn func(ctx context.Context) error) error
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
