package kafka

import "errors"

var (
	// ErrProducerClosed producer уже закрыт
	ErrProducerClosed = errors.New("kafka: producer is closed")

	// ErrInvalidMessage сообщение не удалось собрать
	ErrInvalidMessage = errors.New("kafka: invalid message")

	// ErrEmptyKey у сообщения нет ключа
	ErrEmptyKey = errors.New("kafka: message key cannot be empty")

	// ErrEmptyValue у сообщения нет payload
	ErrEmptyValue = errors.New("kafka: message value cannot be empty")

	// ErrInvalidConfig некорректная конфигурация producer
	ErrInvalidConfig = errors.New("kafka: invalid configuration")
)
