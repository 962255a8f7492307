package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/booking"
	spaceRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/space"
)

// SpaceRepository пространства в памяти
type SpaceRepository struct {
	store *Store
}

// GetByID получает пространство по ID
func (r *SpaceRepository) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	space, ok := r.store.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	cp := *space
	return &cp, nil
}

// CalendarRepository расписания в памяти
type CalendarRepository struct {
	store *Store
}

// GetActiveSchedule получает активное расписание пространства, действующее на дату
func (r *CalendarRepository) GetActiveSchedule(_ context.Context, spaceID int64, date time.Time) (*domain.AvailabilitySchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	candidates := make([]*domain.AvailabilitySchedule, 0)
	for _, s := range r.store.schedules {
		if s.SpaceID == spaceID {
			candidates = append(candidates, s)
		}
	}

	picked := domain.PickSchedule(candidates, date)
	if picked == nil {
		return nil, domain.ErrScheduleNotFound
	}
	cp := *picked
	return &cp, nil
}

// GetOpenWindows получает открытые периоды расписания на дату
func (r *CalendarRepository) GetOpenWindows(_ context.Context, scheduleID int64, date time.Time) ([]*domain.OpenWindow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	windows := make([]*domain.OpenWindow, 0)
	for _, w := range r.store.windows[scheduleID] {
		if !w.IsAvailable || domain.IsDateBefore(w.Date, date) || domain.IsDateBefore(date, w.Date) {
			continue
		}
		cp := *w
		cp.Date = domain.DateOnly(date)
		windows = append(windows, &cp)
	}

	domain.SortWindows(windows)
	return windows, nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create создает новое бронирование
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextBookingID++
	now := r.store.now()

	booking.ID = r.store.nextBookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now

	cp := *booking
	r.store.bookings[booking.ID] = &cp
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

// GetByUserID получает бронирования пользователя (сначала новые)
func (r *BookingRepository) GetByUserID(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].ID > result[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= uint64(len(result)) {
			return []*domain.Booking{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < uint64(len(result)) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// GetActiveBySpaceAndRange получает активные бронирования пространства, пересекающие [from, to)
func (r *BookingRepository) GetActiveBySpaceAndRange(_ context.Context, spaceID int64, from, to time.Time) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.SpaceID == spaceID && b.IsActive() && b.Overlaps(from, to) {
			cp := *b
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.Before(result[j].StartAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SumPeopleOverlapping суммирует people_count активных бронирований, пересекающих [start, end)
func (r *BookingRepository) SumPeopleOverlapping(_ context.Context, spaceID int64, start, end time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := 0
	for _, b := range r.store.bookings {
		if b.SpaceID == spaceID && b.IsActive() && b.Overlaps(start, end) {
			total += b.PeopleCount
		}
	}
	return total, nil
}

// LockSpaceDay требует открытой транзакции; транзакции хранилища уже сериализованы
func (r *BookingRepository) LockSpaceDay(ctx context.Context, _ int64, _ time.Time) error {
	if !inTx(ctx) {
		return bookingRepo.ErrNotInTransaction
	}
	return nil
}

// Confirm переводит бронирование в confirmed и сохраняет данные оплаты
func (r *BookingRepository) Confirm(_ context.Context, id int64, paymentReference *string, paidAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	paid := paidAt
	b.Status = domain.StatusConfirmed
	b.PaymentReference = paymentReference
	b.PaidAt = &paid
	b.UpdatedAt = r.store.now()
	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *BookingRepository) Cancel(_ context.Context, id int64, reason *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	now := r.store.now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// EventRepository журнал обработанных событий в памяти
type EventRepository struct {
	store *Store
}

// MarkProcessed записывает событие как обработанное, false если оно уже было
func (r *EventRepository) MarkProcessed(_ context.Context, eventID, eventType string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[eventID]; ok {
		return false, nil
	}
	r.store.events[eventID] = eventType
	return true, nil
}
