package payment

import "github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"

// RoutingKey ключ маршрутизации события успешной оплаты
const RoutingKey = "payment.succeeded"

// PaymentSucceeded событие платёжного сервиса
type PaymentSucceeded struct {
	Event   string `json:"event"`   // "payment.succeeded"
	Version int    `json:"version"` // 1
	Data    struct {
		EventID          string  `json:"event_id"`
		BookingID        int64   `json:"booking_id"`
		PaymentReference *string `json:"payment_reference,omitempty"`
	} `json:"data"`
}

// ToServiceRequest конвертирует событие в модель сервиса
// Если event_id не передан, используется message-id AMQP
func (e *PaymentSucceeded) ToServiceRequest(messageID string) *models.PaymentSucceededRequest {
	eventID := e.Data.EventID
	if eventID == "" {
		eventID = messageID
	}
	return &models.PaymentSucceededRequest{
		EventID:          eventID,
		BookingID:        e.Data.BookingID,
		PaymentReference: e.Data.PaymentReference,
	}
}
