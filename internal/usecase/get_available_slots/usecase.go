package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// UseCase use case для получения доступных слотов пространства на дату
type UseCase struct {
	spaces       SpaceProvider
	calendar     Calendar
	occupancy    Occupancy
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaces SpaceProvider,
	calendar Calendar,
	occupancy Occupancy,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaces:       spaces,
		calendar:     calendar,
		occupancy:    occupancy,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат вычисляется заново при каждом вызове
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	if req.Date.IsZero() {
		req.Date = domain.DateOnly(now)
	}

	uc.logger.Info("GetAvailableSlots: space=%d, date=%s", req.SpaceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пространство
	space, err := uc.spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		if isSpaceNotFound(err) {
			uc.logger.Warn("GetAvailableSlots: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %w", ErrInternal, err)
	}

	resp := &Response{
		Date:          domain.DateOnly(req.Date),
		SpaceID:       space.ID,
		TotalCapacity: space.Capacity,
		Slots:         []domain.Slot{},
	}

	// 3. Недоступное пространство не предлагает слотов
	if !space.IsBookable() {
		uc.logger.Info("GetAvailableSlots: space id=%d is %s, no slots", space.ID, space.Status)
		return resp, nil
	}

	// 4. Окна и бронирования читаются из одного снимка данных
	var (
		windows  []*domain.OpenWindow
		bookings []*domain.Booking
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		windows, err = uc.calendar.OpenWindows(txCtx, space.ID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get open windows: %w", ErrInternal, err)
		}

		bookings, err = uc.occupancy.DaySnapshot(txCtx, space.ID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: space=%d: %v", space.ID, err)
		return nil, err
	}

	// 5. Считаем слоты
	resp.Slots = buildSlots(space, windows, bookings)

	uc.logger.Info("GetAvailableSlots: space=%d, date=%s, windows=%d, slots=%d",
		space.ID, req.Date.Format(domain.DateFormat), len(windows), len(resp.Slots))

	return resp, nil
}
