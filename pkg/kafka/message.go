package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message сообщение Kafka с метаданными
type Message struct {
	Key       string            // Ключ партиционирования (например, space_id)
	Value     []byte            // JSON payload
	Headers   map[string]string // Заголовки
	Timestamp time.Time
}

// Ключи заголовков
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderOriginalTopic = "original-topic"
	HeaderError         = "error"
)

// MessageBuilder fluent-построитель сообщений
type MessageBuilder struct {
	msg Message
	err error
}

// NewMessage создает новый MessageBuilder
func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

// WithKey задаёт ключ сообщения
func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

// WithValue кодирует значение в JSON
func (mb *MessageBuilder) WithValue(value interface{}) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.err = err
		mb.msg.Value = nil
		return mb
	}
	mb.msg.Value = data
	return mb
}

// WithHeader добавляет произвольный заголовок
func (mb *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	mb.msg.Headers[key] = value
	return mb
}

// WithEventID задаёт ID события (генерирует UUID, если пусто)
func (mb *MessageBuilder) WithEventID(eventID string) *MessageBuilder {
	if eventID == "" {
		eventID = uuid.New().String()
	}
	mb.msg.Headers[HeaderEventID] = eventID
	return mb
}

// WithEventType задаёт тип события
func (mb *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	mb.msg.Headers[HeaderEventType] = eventType
	return mb
}

// WithSource задаёт сервис-источник
func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	mb.msg.Headers[HeaderSource] = source
	return mb
}

// WithSchemaVersion задаёт версию схемы payload
func (mb *MessageBuilder) WithSchemaVersion(version string) *MessageBuilder {
	mb.msg.Headers[HeaderSchemaVersion] = version
	return mb
}

// Build возвращает сообщение или ошибку кодирования значения
func (mb *MessageBuilder) Build() (Message, error) {
	if mb.err != nil {
		return Message{}, ErrInvalidMessage
	}
	return mb.msg, nil
}
