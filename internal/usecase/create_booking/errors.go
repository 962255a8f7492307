package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest возвращается при некорректных входных данных
	ErrInvalidRequest = errors.New("create_booking: invalid request")

	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("create_booking: space not found")

	// ErrResourceUnavailable возвращается, когда пространство не принимает бронирования
	ErrResourceUnavailable = errors.New("create_booking: space is not available for booking")

	// ErrSlotNotOpen возвращается, когда ни одно открытое окно не покрывает интервал целиком
	ErrSlotNotOpen = errors.New("create_booking: requested interval is not within an open window")

	// ErrInsufficientCapacity возвращается, когда свободной вместимости не хватает
	// Конкретное значение остатка доступно через *InsufficientCapacityError
	ErrInsufficientCapacity = errors.New("create_booking: insufficient capacity")

	// ErrUnavailable возвращается, когда транзакция не прошла после всех повторов
	ErrUnavailable = errors.New("create_booking: booking temporarily unavailable, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// InsufficientCapacityError ошибка нехватки вместимости с остатком на интервале
type InsufficientCapacityError struct {
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("%s: %d remaining", ErrInsufficientCapacity.Error(), e.Remaining)
}

// Is позволяет сравнивать через errors.Is(err, ErrInsufficientCapacity)
func (e *InsufficientCapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}
