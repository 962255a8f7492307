package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

// PaymentSucceededEvent тип входящего события об оплате
const PaymentSucceededEvent = "payment.succeeded"

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	if !booking.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrUnauthorized
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя (сначала новые)
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	filter := domain.UserBookingsFilter{
		UserID: req.UserID,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может только владелец; вместимость освобождается сразу после фиксации транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		// 2. Проверяем владельца
		if !booking.IsOwnedBy(req.UserID) {
			s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", req.UserID, bookingID)
			return ErrUnauthorized
		}

		// 3. Проверяем, что бронирование ещё не отменено
		if booking.IsCancelled() {
			s.logger.Warn("Cancel: booking id=%d already cancelled", bookingID)
			return ErrAlreadyCancelled
		}

		// 4. Отменяем
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		cancelled, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.publish(ctx, domain.EventBookingCancelled, cancelled)

	return models.FromDomainBooking(cancelled), nil
}

// Confirm подтверждает бронирование после оплаты
// Повторное подтверждение не меняет бронирование; подтверждение отменённого возвращает ErrInvalidState
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	if err := validatePaymentReference(req.PaymentReference); err != nil {
		return nil, err
	}

	var (
		booking      *domain.Booking
		transitioned bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, transitioned, err = s.confirmInTx(txCtx, bookingID, req.PaymentReference)
		return err
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.publish(ctx, domain.EventBookingConfirmed, booking)
	}

	return models.FromDomainBooking(booking), nil
}

// ConfirmPayment обрабатывает событие об успешной оплате
// Событие отмечается обработанным в той же транзакции, что и подтверждение; повторная доставка игнорируется
func (s *Service) ConfirmPayment(ctx context.Context, req *models.PaymentSucceededRequest) error {
	s.logger.Info("ConfirmPayment: event=%s, booking id=%d", req.EventID, req.BookingID)

	if req.EventID == "" {
		return fmt.Errorf("%w: eventID is required", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if err := validatePaymentReference(req.PaymentReference); err != nil {
		return err
	}

	var (
		booking      *domain.Booking
		transitioned bool
		duplicate    bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		fresh, err := s.eventRepo.MarkProcessed(txCtx, req.EventID, PaymentSucceededEvent)
		if err != nil {
			s.logger.Error("ConfirmPayment: failed to mark event=%s processed: %v", req.EventID, err)
			return fmt.Errorf("%w: ConfirmPayment - mark processed: %w", ErrInternal, err)
		}
		if !fresh {
			duplicate = true
			return nil
		}

		booking, transitioned, err = s.confirmInTx(txCtx, req.BookingID, req.PaymentReference)
		return err
	})
	if err != nil {
		return err
	}

	if duplicate {
		s.logger.Info("ConfirmPayment: event=%s already processed, skipping", req.EventID)
		return nil
	}

	if transitioned {
		s.publish(ctx, domain.EventBookingConfirmed, booking)
	}
	return nil
}

// confirmInTx переводит бронирование в confirmed внутри открытой транзакции
// Возвращает true, если статус действительно изменился
func (s *Service) confirmInTx(txCtx context.Context, bookingID int64, paymentReference *string) (*domain.Booking, bool, error) {
	booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
	if err != nil {
		return nil, false, s.mapRepoError("Confirm", bookingID, err)
	}

	switch {
	case booking.IsConfirmed():
		s.logger.Info("Confirm: booking id=%d already confirmed", bookingID)
		return booking, false, nil
	case !booking.Status.CanTransitionTo(domain.StatusConfirmed):
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return nil, false, ErrInvalidState
	}

	if err := s.bookingRepo.Confirm(txCtx, bookingID, paymentReference, s.timeProvider.Now()); err != nil {
		return nil, false, s.mapRepoError("Confirm", bookingID, err)
	}

	confirmed, err := s.bookingRepo.GetByID(txCtx, bookingID)
	if err != nil {
		return nil, false, s.mapRepoError("Confirm", bookingID, err)
	}

	s.logger.Info("Confirm: booking id=%d confirmed", bookingID)
	return confirmed, true, nil
}

// publish отправляет событие после фиксации транзакции
// Ошибка публикации не откатывает изменение бронирования
func (s *Service) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.publisher == nil || booking == nil {
		return
	}

	event := domain.NewBookingEvent(eventType, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
	}
}

func (s *Service) mapRepoError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func validatePaymentReference(ref *string) error {
	if ref != nil && len(*ref) > domain.MaxPaymentReferenceLength {
		return fmt.Errorf("%w: payment reference is too long", ErrInvalidInput)
	}
	return nil
}
