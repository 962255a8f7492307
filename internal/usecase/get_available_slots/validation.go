package get_available_slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	spaceRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBooking/internal/integrations/spaceservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	// Дата сравнивается по календарю, без учёта времени суток
	if domain.IsDateBefore(req.Date, now) {
		return ErrInvalidDate
	}

	return nil
}

// isSpaceNotFound распознаёт отсутствие пространства для любого источника данных
func isSpaceNotFound(err error) bool {
	return errors.Is(err, spaceRepo.ErrSpaceNotFound) || errors.Is(err, spaceservice.ErrSpaceNotFound)
}
