package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Service учёт занятой вместимости пространств
// Занятость считается по всем неотменённым бронированиям, включая pending
type Service struct {
	bookingRepo BookingRepository
}

// NewService создает новый экземпляр сервиса занятости
func NewService(bookingRepo BookingRepository) *Service {
	return &Service{bookingRepo: bookingRepo}
}

// CommittedPeople возвращает число людей в активных бронированиях, пересекающих [start, end)
// Сумма берётся по всему интервалу, а не по пиковому моменту
func (s *Service) CommittedPeople(ctx context.Context, spaceID int64, start, end time.Time) (int, error) {
	total, err := s.bookingRepo.SumPeopleOverlapping(ctx, spaceID, start, end)
	if err != nil {
		return 0, fmt.Errorf("%w: CommittedPeople: %w", ErrInternal, err)
	}
	return total, nil
}

// DaySnapshot возвращает активные бронирования пространства, пересекающие дату
func (s *Service) DaySnapshot(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Booking, error) {
	from := domain.DateOnly(date)
	bookings, err := s.bookingRepo.GetActiveBySpaceAndRange(ctx, spaceID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: DaySnapshot: %w", ErrInternal, err)
	}
	return bookings, nil
}

// CommittedFrom считает занятость [start, end) по заранее загруженному снимку бронирований
func CommittedFrom(bookings []*domain.Booking, start, end time.Time) int {
	return domain.SumCommittedPeople(bookings, start, end)
}
