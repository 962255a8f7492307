package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrUnauthorized возвращается, когда пользователь не является владельцем бронирования
	ErrUnauthorized = errors.New("bookings: requester does not own the booking")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("bookings: booking already cancelled")

	// ErrInvalidState возвращается, когда переход статуса запрещён (например, подтверждение отменённого)
	ErrInvalidState = errors.New("bookings: invalid booking state for this operation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
