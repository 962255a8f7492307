package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/txmanager"
)

// Исходы попытки бронирования для метрик
const (
	outcomeCreated              = "created"
	outcomeInvalid              = "invalid_request"
	outcomeSpaceNotFound        = "space_not_found"
	outcomeResourceUnavailable  = "resource_unavailable"
	outcomeSlotNotOpen          = "slot_not_open"
	outcomeInsufficientCapacity = "insufficient_capacity"
	outcomeUnavailable          = "unavailable"
	outcomeError                = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	spaces       SpaceProvider
	calendar     Calendar
	occupancy    Occupancy
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	spaces SpaceProvider,
	calendar Calendar,
	occupancy Occupancy,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		spaces:       spaces,
		calendar:     calendar,
		occupancy:    occupancy,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка окна, вместимости и вставка выполняются в одной транзакции READ COMMITTED
// под advisory-блокировкой пары (пространство, дата): после получения блокировки
// каждый запрос видит все бронирования, закоммиченные предыдущими владельцами блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, space=%d, date=%s, time=%s-%s, people=%d",
		req.UserID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PeopleCount)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пространство
	space, err := uc.spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		if isSpaceNotFound(err) {
			uc.logger.Warn("CreateBooking: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %w", ErrInternal, err)
	}

	// 3. Количество людей в пределах вместимости
	if err := validatePeopleCount(space, req.PeopleCount); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 4. Пространство принимает бронирования
	if !space.IsBookable() {
		uc.logger.Warn("CreateBooking: space id=%d is %s", space.ID, space.Status)
		return nil, ErrResourceUnavailable
	}

	startAt := req.StartTime.On(req.Date)
	endAt := req.EndTime.On(req.Date)

	var result *domain.Booking

	// 5. Выполняем проверки и вставку под блокировкой
	err = uc.txManager.DoLocked(ctx, func(txCtx context.Context) error {
		// 5.1. Сериализуем попытки на одну пару (пространство, дата)
		if err := uc.bookingRepo.LockSpaceDay(txCtx, space.ID, req.Date); err != nil {
			return fmt.Errorf("%w: failed to lock space day: %w", ErrInternal, err)
		}

		// 5.2. Интервал должен целиком лежать в одном открытом окне
		windows, err := uc.calendar.OpenWindows(txCtx, space.ID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get open windows: %w", ErrInternal, err)
		}
		if findCoveringWindow(windows, req) == nil {
			uc.logger.Warn("CreateBooking: %s-%s is not within an open window of space=%d on %s",
				req.StartTime, req.EndTime, space.ID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotOpen
		}

		// 5.3. Проверяем вместимость
		committed, err := uc.occupancy.CommittedPeople(txCtx, space.ID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("%w: failed to get committed people: %w", ErrInternal, err)
		}
		if committed+req.PeopleCount > space.Capacity {
			remaining := domain.RemainingCapacity(space.Capacity, committed)
			uc.logger.Warn("CreateBooking: insufficient capacity for space=%d, requested=%d, remaining=%d",
				space.ID, req.PeopleCount, remaining)
			return &InsufficientCapacityError{Remaining: remaining}
		}

		// 5.4. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			SpaceID:     space.ID,
			UserID:      req.UserID,
			StartAt:     startAt,
			EndAt:       endAt,
			PeopleCount: req.PeopleCount,
			Status:      domain.StatusPending,
			TotalPrice:  domain.TotalPrice(space.PricePerHour, req.StartTime, req.EndTime, req.PeopleCount),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateBooking: space=%d, date=%s: retries exhausted: %v",
				space.ID, req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", result.ID, result.TotalPrice.StringFixed(2))

	// 6. Публикуем событие после фиксации транзакции
	uc.publish(ctx, result)

	return &Response{
		ID:             result.ID,
		UserID:         result.UserID,
		SpaceID:        result.SpaceID,
		Date:           domain.DateOnly(req.Date),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		PeopleCount:    result.PeopleCount,
		Status:         string(result.Status),
		PricePerPerson: domain.PricePerPerson(space.PricePerHour, req.StartTime, req.EndTime),
		TotalPrice:     result.TotalPrice,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking) {
	if uc.publisher == nil {
		return
	}
	event := domain.NewBookingEvent(domain.EventBookingCreated, booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, booking.ID, err)
	}
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.IncBookingAttempt(outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, ErrSpaceNotFound):
		return outcomeSpaceNotFound
	case errors.Is(err, ErrResourceUnavailable):
		return outcomeResourceUnavailable
	case errors.Is(err, ErrSlotNotOpen):
		return outcomeSlotNotOpen
	case errors.Is(err, ErrInsufficientCapacity):
		return outcomeInsufficientCapacity
	case errors.Is(err, ErrUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}
