package spaceservice

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("spaceservice client: space not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("spaceservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("spaceservice client: invalid response")
)
