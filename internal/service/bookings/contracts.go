package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	Confirm(ctx context.Context, id int64, paymentReference *string, paidAt time.Time) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// EventRepository журнал обработанных входящих событий
type EventRepository interface {
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// EventPublisher публикация событий жизненного цикла бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
