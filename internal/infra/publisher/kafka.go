package publisher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/kafka"
)

const (
	source        = "space-booking"
	schemaVersion = "1"
)

// Producer отправка сообщений в Kafka (*kafka.Producer)
type Producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// MetricsCollector метрики публикации событий (опционально)
type MetricsCollector interface {
	IncBookingEvent(eventType string, ok bool)
}

// KafkaPublisher публикует события бронирований в Kafka
// Ключ сообщения - ID пространства, поэтому события одного пространства упорядочены
type KafkaPublisher struct {
	producer Producer
	timeout  time.Duration
	metrics  MetricsCollector
}

// NewKafkaPublisher создает publisher поверх producer
func NewKafkaPublisher(producer Producer, timeout time.Duration, metrics MetricsCollector) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Publish отправляет событие бронирования
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.SpaceID, 10)).
		WithValue(event).
		WithEventID("").
		WithEventType(event.Type).
		WithSource(source).
		WithSchemaVersion(schemaVersion).
		Build()
	if err != nil {
		p.observe(event.Type, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.producer.Publish(ctx, msg)
	p.observe(event.Type, err)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) observe(eventType string, err error) {
	if p.metrics != nil {
		p.metrics.IncBookingEvent(eventType, err == nil)
	}
}

// NoopPublisher используется, когда публикация событий отключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, domain.BookingEvent) error {
	return nil
}
