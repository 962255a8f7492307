package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

var calendarDay = time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestGetActiveSchedule_LatestCoveringSchedule(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := calendarDay.AddDate(0, 0, -1)

	mock.ExpectQuery(`FROM availability_schedules WHERE .*start_date <= \$\d AND \(end_date IS NULL OR end_date >= \$\d\) ORDER BY created_at DESC, id DESC LIMIT 1`).
		WithArgs(true, int64(1), "2030-01-10", "2030-01-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "space_id", "name", "start_date", "end_date", "is_active", "created_at"}).
			AddRow(int64(5), int64(1), "winter", calendarDay.AddDate(0, -1, 0), nil, true, created))

	schedule, err := repo.GetActiveSchedule(context.Background(), 1, calendarDay)

	require.NoError(t, err)
	assert.Equal(t, int64(5), schedule.ID)
	assert.Nil(t, schedule.EndDate)
	assert.True(t, schedule.IsActive)
	assert.Equal(t, created, schedule.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveSchedule_None(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM availability_schedules`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "space_id", "name", "start_date", "end_date", "is_active", "created_at"}))

	_, err := repo.GetActiveSchedule(context.Background(), 1, calendarDay)

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOpenWindows_OrderedAvailablePeriods(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM availability_periods WHERE .* ORDER BY start_time ASC, end_time ASC, id ASC`).
		WithArgs("2030-01-10", true, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "date", "start_time", "end_time", "is_available"}).
			AddRow(int64(1), int64(5), calendarDay, "09:00:00", "12:00:00", true).
			AddRow(int64(2), int64(5), calendarDay, "13:00:00", "24:00:00", true))

	windows, err := repo.GetOpenWindows(context.Background(), 5, calendarDay.Add(9*time.Hour))

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), windows[0].EndTime)
	assert.Equal(t, types.TimeString("24:00"), windows[1].EndTime)
	assert.Equal(t, calendarDay, windows[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}
