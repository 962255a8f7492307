package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Service календарь доступности пространств
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// OpenWindows возвращает открытые окна пространства на дату
// Окна берутся из единственного активного расписания, действующего на дату.
// Если расписания нет, возвращается пустой список
func (s *Service) OpenWindows(ctx context.Context, spaceID int64, date time.Time) ([]*domain.OpenWindow, error) {
	schedule, err := s.repo.GetActiveSchedule(ctx, spaceID, date)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			return []*domain.OpenWindow{}, nil
		}
		s.logger.Error("OpenWindows: failed to get schedule for space=%d, date=%s: %v",
			spaceID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: OpenWindows - get schedule: %w", ErrInternal, err)
	}

	windows, err := s.repo.GetOpenWindows(ctx, schedule.ID, date)
	if err != nil {
		s.logger.Error("OpenWindows: failed to get windows for schedule=%d, date=%s: %v",
			schedule.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: OpenWindows - get windows: %w", ErrInternal, err)
	}

	domain.SortWindows(windows)
	return windows, nil
}

// Overview возвращает признак наличия открытых окон на каждый из days дней начиная с from
func (s *Service) Overview(ctx context.Context, spaceID int64, from time.Time, days int) ([]domain.DayAvailability, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	start := domain.DateOnly(from)
	result := make([]domain.DayAvailability, 0, days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		windows, err := s.OpenWindows(ctx, spaceID, date)
		if err != nil {
			return nil, err
		}

		result = append(result, domain.DayAvailability{
			Date:            date,
			HasAvailability: len(windows) > 0,
		})
	}

	s.logger.Info("Overview: space=%d, from=%s, days=%d", spaceID, start.Format(domain.DateFormat), days)
	return result, nil
}
