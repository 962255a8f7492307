package calendar_mongo

import "errors"

var (
	// ErrQuery возвращается при ошибке запроса к MongoDB
	ErrQuery = errors.New("calendar.mongo: failed to query schedules")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("calendar.mongo: failed to decode schedule")

	// ErrInvalidDocument возвращается, когда документ содержит некорректные данные
	ErrInvalidDocument = errors.New("calendar.mongo: invalid schedule document")
)
