package payment

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

// BookingService подтверждение бронирований по событиям оплаты
type BookingService interface {
	ConfirmPayment(ctx context.Context, req *models.PaymentSucceededRequest) error
}

// DeliverySource источник сообщений (*rabbitmq.Consumer)
type DeliverySource interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
