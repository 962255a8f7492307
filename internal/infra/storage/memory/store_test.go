package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/booking"
)

func at(hour int) time.Time {
	return time.Date(2025, 10, 15, hour, 0, 0, 0, time.UTC)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.TxManager().DoLocked(ctx, func(ctx context.Context) error {
		_, err := store.Bookings().Create(ctx, &domain.Booking{SpaceID: 1, UserID: 1, StartAt: at(9), EndAt: at(10), PeopleCount: 2, Status: domain.StatusPending})
		require.NoError(t, err)
		_, err = store.Events().MarkProcessed(ctx, "evt-1", "payment.succeeded")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	sum, err := store.Bookings().SumPeopleOverlapping(ctx, 1, at(9), at(10))
	require.NoError(t, err)
	assert.Equal(t, 0, sum)

	fresh, err := store.Events().MarkProcessed(ctx, "evt-1", "payment.succeeded")
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestTxManager_ReadOnlyTransactionsRunConcurrently(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	firstIn := make(chan struct{})
	secondIn := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- tx.DoReadOnly(context.Background(), func(ctx context.Context) error {
			close(firstIn)
			select {
			case <-secondIn:
				return nil
			case <-time.After(2 * time.Second):
				return errors.New("second reader was blocked")
			}
		})
	}()

	<-firstIn
	err := tx.DoReadOnly(context.Background(), func(ctx context.Context) error {
		close(secondIn)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, <-done)
}

func TestTxManager_ReadOnlyWaitsForWriter(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	writerIn := make(chan struct{})
	release := make(chan struct{})
	writerDone := make(chan error, 1)

	go func() {
		writerDone <- tx.DoLocked(context.Background(), func(ctx context.Context) error {
			_, err := store.Bookings().Create(ctx, &domain.Booking{SpaceID: 1, UserID: 1, StartAt: at(9), EndAt: at(10), PeopleCount: 3, Status: domain.StatusPending})
			close(writerIn)
			<-release
			return err
		})
	}()

	<-writerIn
	readerDone := make(chan int, 1)
	go func() {
		_ = tx.DoReadOnly(context.Background(), func(ctx context.Context) error {
			sum, _ := store.Bookings().SumPeopleOverlapping(ctx, 1, at(9), at(10))
			readerDone <- sum
			return nil
		})
	}()

	select {
	case <-readerDone:
		t.Fatal("reader observed an uncommitted write")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-writerDone)
	assert.Equal(t, 3, <-readerDone)
}

func TestTxManager_WriteInsideReadOnlyIsRejected(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	err := tx.DoReadOnly(context.Background(), func(ctx context.Context) error {
		return tx.Do(ctx, func(ctx context.Context) error { return nil })
	})
	assert.ErrorIs(t, err, ErrReadOnlyTransaction)
}

func TestBookingRepository_LockRequiresTransaction(t *testing.T) {
	store := NewStore()

	err := store.Bookings().LockSpaceDay(context.Background(), 1, at(0))
	assert.ErrorIs(t, err, bookingRepo.ErrNotInTransaction)

	err = store.TxManager().Do(context.Background(), func(ctx context.Context) error {
		return store.Bookings().LockSpaceDay(ctx, 1, at(0))
	})
	assert.NoError(t, err)
}

func TestBookingRepository_CancelReleasesCapacity(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Bookings()

	b, err := repo.Create(ctx, &domain.Booking{SpaceID: 1, UserID: 1, StartAt: at(9), EndAt: at(11), PeopleCount: 4, Status: domain.StatusPending})
	require.NoError(t, err)

	sum, _ := repo.SumPeopleOverlapping(ctx, 1, at(10), at(12))
	assert.Equal(t, 4, sum)

	require.NoError(t, repo.Cancel(ctx, b.ID, nil))

	sum, _ = repo.SumPeopleOverlapping(ctx, 1, at(10), at(12))
	assert.Equal(t, 0, sum)

	assert.ErrorIs(t, repo.Cancel(ctx, 999, nil), bookingRepo.ErrBookingNotFound)
}

func TestCalendarRepository_PicksLatestSchedule(t *testing.T) {
	store := NewStore()
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	store.AddSchedule(&domain.AvailabilitySchedule{ID: 1, SpaceID: 1, StartDate: day.AddDate(0, 0, -10), IsActive: true, CreatedAt: day.AddDate(0, 0, -10)},
		&domain.OpenWindow{ID: 1, Date: day, StartTime: "08:00", EndTime: "10:00", IsAvailable: true})
	store.AddSchedule(&domain.AvailabilitySchedule{ID: 2, SpaceID: 1, StartDate: day.AddDate(0, 0, -1), IsActive: true, CreatedAt: day.AddDate(0, 0, -1)},
		&domain.OpenWindow{ID: 3, Date: day, StartTime: "14:00", EndTime: "16:00", IsAvailable: true},
		&domain.OpenWindow{ID: 2, Date: day, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		&domain.OpenWindow{ID: 4, Date: day, StartTime: "12:00", EndTime: "13:00", IsAvailable: false})

	schedule, err := store.Calendar().GetActiveSchedule(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), schedule.ID)

	windows, err := store.Calendar().GetOpenWindows(context.Background(), schedule.ID, day)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, int64(2), windows[0].ID)
	assert.Equal(t, int64(3), windows[1].ID)

	_, err = store.Calendar().GetActiveSchedule(context.Background(), 2, day)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}
