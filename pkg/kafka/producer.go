package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Config настройки producer
type Config struct {
	Brokers      []string
	Topic        string
	DLQTopic     string
	Compression  string // gzip, snappy, lz4, zstd
	RequiredAcks int    // -1 all, 0 none, 1 leader
	MaxAttempts  int
	BatchTimeout time.Duration
}

// messageWriter подмножество *kafka.Writer, используемое producer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer обёртка над kafka.Writer с отправкой в DLQ при ошибке
type Producer struct {
	writer    messageWriter
	dlqWriter messageWriter
	topic     string
	closed    bool
	mu        sync.RWMutex
}

// NewProducer создает producer для топика cfg.Topic
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrInvalidConfig)
	}

	compression := compressionOf(cfg.Compression)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{}, // порядок событий в пределах ключа
		RequiredAcks: requiredAcksOf(cfg.RequiredAcks),
		Compression:  compression,
		MaxAttempts:  cfg.MaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
	}

	p := &Producer{writer: writer, topic: cfg.Topic}

	if cfg.DLQTopic != "" {
		p.dlqWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.DLQTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  compression,
			MaxAttempts:  3,
		}
	}

	return p, nil
}

// Publish отправляет сообщение в Kafka
// При ошибке записи сообщение дублируется в DLQ (если настроен), исходная ошибка возвращается
func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProducerClosed
	}
	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}

	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		dlqMsg := toKafkaMessage(msg)
		dlqMsg.Headers = append(dlqMsg.Headers,
			kafka.Header{Key: HeaderOriginalTopic, Value: []byte(p.topic)},
			kafka.Header{Key: HeaderError, Value: []byte(err.Error())},
		)
		if dlqErr := p.dlqWriter.WriteMessages(ctx, dlqMsg); dlqErr != nil {
			return fmt.Errorf("kafka: publish failed: %w (dlq: %v)", err, dlqErr)
		}
	}

	return fmt.Errorf("kafka: publish failed: %w", err)
}

// Close закрывает writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	if err := p.writer.Close(); err != nil {
		firstErr = err
	}
	if p.dlqWriter != nil {
		if err := p.dlqWriter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func toKafkaMessage(msg Message) kafka.Message {
	km := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  msg.Timestamp,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return km
}

func compressionOf(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.Snappy
	}
}

func requiredAcksOf(n int) kafka.RequiredAcks {
	switch n {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}
