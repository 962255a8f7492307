package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer подписчик на topic exchange RabbitMQ
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	keys     []string
}

// NewConsumer подключается к брокеру, объявляет exchange и очередь и привязывает routing keys
func NewConsumer(url, exchange, queue string, keys []string, prefetch int) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err)
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("rabbitmq: declare queue %s: %w", queue, err)
	}

	for _, rk := range keys {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			closeAll()
			return nil, fmt.Errorf("rabbitmq: bind %s: %w", rk, err)
		}
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			closeAll()
			return nil, fmt.Errorf("rabbitmq: set qos: %w", err)
		}
	}

	return &Consumer{conn: conn, ch: ch, exchange: exchange, queue: q.Name, keys: keys}, nil
}

// Deliveries начинает потребление очереди с ручным подтверждением
func (c *Consumer) Deliveries(ctx context.Context) (<-chan amqp.Delivery, error) {
	return c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
}

// Close закрывает канал и соединение
func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
