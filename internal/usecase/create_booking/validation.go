package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	spaceRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBooking/internal/integrations/spaceservice"
)

// validateRequest валидирует входные данные запроса (без учёта вместимости пространства)
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidRequest)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidRequest)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	if domain.IsDateBefore(req.Date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidRequest)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidRequest, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidRequest, err)
	}

	if !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidRequest)
	}

	if req.PeopleCount < domain.MinPeopleCount {
		return fmt.Errorf("%w: peopleCount must be at least %d", ErrInvalidRequest, domain.MinPeopleCount)
	}

	return nil
}

// validatePeopleCount проверяет, что количество людей не превышает вместимость пространства
func validatePeopleCount(space *domain.Space, peopleCount int) error {
	if !space.AcceptsPeople(peopleCount) {
		return fmt.Errorf("%w: peopleCount %d exceeds space capacity %d", ErrInvalidRequest, peopleCount, space.Capacity)
	}
	return nil
}

// findCoveringWindow возвращает окно, целиком покрывающее интервал
func findCoveringWindow(windows []*domain.OpenWindow, req *Request) *domain.OpenWindow {
	for _, w := range windows {
		if w.Covers(req.StartTime, req.EndTime) {
			return w
		}
	}
	return nil
}

// isSpaceNotFound распознаёт отсутствие пространства для любого источника данных
func isSpaceNotFound(err error) bool {
	return errors.Is(err, spaceRepo.ErrSpaceNotFound) || errors.Is(err, spaceservice.ErrSpaceNotFound)
}
