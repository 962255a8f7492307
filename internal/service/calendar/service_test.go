package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/memory"
)

var day = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestOpenWindows_SortedAndClosedPeriodsSkipped(t *testing.T) {
	store := memory.NewStore()
	store.AddSchedule(
		&domain.AvailabilitySchedule{ID: 1, SpaceID: 1, StartDate: day, IsActive: true, CreatedAt: day},
		&domain.OpenWindow{ID: 3, Date: day, StartTime: "14:00", EndTime: "16:00", IsAvailable: true},
		&domain.OpenWindow{ID: 1, Date: day, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		&domain.OpenWindow{ID: 2, Date: day, StartTime: "12:00", EndTime: "13:00", IsAvailable: false},
	)
	svc := NewService(store.Calendar(), nopLogger{})

	windows, err := svc.OpenWindows(context.Background(), 1, day)

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, int64(1), windows[0].ID)
	assert.Equal(t, int64(3), windows[1].ID)
}

func TestOpenWindows_NoScheduleIsEmpty(t *testing.T) {
	svc := NewService(memory.NewStore().Calendar(), nopLogger{})

	windows, err := svc.OpenWindows(context.Background(), 1, day)

	require.NoError(t, err)
	assert.Empty(t, windows)
}

type failingRepo struct{}

func (failingRepo) GetActiveSchedule(context.Context, int64, time.Time) (*domain.AvailabilitySchedule, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) GetOpenWindows(context.Context, int64, time.Time) ([]*domain.OpenWindow, error) {
	return nil, nil
}

func TestOpenWindows_StorageErrorIsInternal(t *testing.T) {
	svc := NewService(failingRepo{}, nopLogger{})

	_, err := svc.OpenWindows(context.Background(), 1, day)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestOverview(t *testing.T) {
	store := memory.NewStore()
	store.SeedDemo(day, 3)
	svc := NewService(store.Calendar(), nopLogger{})

	days, err := svc.Overview(context.Background(), 1, day.Add(10*time.Hour), 5)

	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, day, days[0].Date)
	assert.True(t, days[0].HasAvailability)
	assert.True(t, days[2].HasAvailability)
	assert.False(t, days[3].HasAvailability)
	assert.False(t, days[4].HasAvailability)

	_, err = svc.Overview(context.Background(), 1, day, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
