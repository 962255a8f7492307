package payment

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
)

// Consumer подтверждает бронирования по событиям payment.succeeded
type Consumer struct {
	service BookingService
	source  DeliverySource
	logger  Logger
}

// NewConsumer создает потребителя событий оплаты
func NewConsumer(service BookingService, source DeliverySource, logger Logger) *Consumer {
	return &Consumer{
		service: service,
		source:  source,
		logger:  logger,
	}
}

// Run читает сообщения до закрытия канала или отмены ctx
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("PaymentConsumer: started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("PaymentConsumer: stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("PaymentConsumer: delivery channel closed")
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

// handle обрабатывает одно сообщение
// Повторная доставка безопасна: сервис пропускает уже обработанные события
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	if d.RoutingKey != RoutingKey {
		_ = d.Ack(false)
		return
	}

	var evt PaymentSucceeded
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.logger.Warn("PaymentConsumer: unmarshal error: %v", err)
		_ = d.Nack(false, false)
		return
	}

	req := evt.ToServiceRequest(d.MessageId)
	if req.EventID == "" || req.BookingID <= 0 {
		c.logger.Warn("PaymentConsumer: invalid event payload, message_id=%s", d.MessageId)
		_ = d.Ack(false)
		return
	}

	err := c.service.ConfirmPayment(ctx, req)
	switch {
	case err == nil:
		c.logger.Info("PaymentConsumer: event=%s confirmed booking id=%d", req.EventID, req.BookingID)
		_ = d.Ack(false)

	case errors.Is(err, bookings.ErrBookingNotFound),
		errors.Is(err, bookings.ErrInvalidState),
		errors.Is(err, bookings.ErrInvalidInput):
		c.logger.Warn("PaymentConsumer: event=%s rejected for booking id=%d: %v", req.EventID, req.BookingID, err)
		_ = d.Ack(false)

	default:
		c.logger.Error("PaymentConsumer: event=%s failed for booking id=%d, requeue: %v", req.EventID, req.BookingID, err)
		_ = d.Nack(false, true)
	}
}
