package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/txmanager"
)

var lockDate = time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped).WithLockTimeout(2 * time.Second), wrapped, mock
}

const sumQuery = "SELECT COALESCE(SUM(people_count), 0) FROM bookings WHERE space_id = $1 AND status NOT IN ($2) AND start_at < $3 AND end_at > $4"

func TestSumPeopleOverlapping_HalfOpenActiveOnly(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	start := lockDate.Add(10 * time.Hour)
	end := lockDate.Add(12 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(sumQuery)).
		WithArgs(int64(1), "cancelled", end, start).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(4)))

	total, err := repo.SumPeopleOverlapping(context.Background(), 1, start, end)

	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockSpaceDay_RequiresTransaction(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	err := repo.LockSpaceDay(context.Background(), 1, lockDate)

	assert.ErrorIs(t, err, ErrNotInTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockSpaceDay_CapacityIsReadAfterTheLock(t *testing.T) {
	repo, db, mock := newMockRepo(t)
	tx := txmanager.NewTransactionManager(db, txmanager.WithBaseBackoff(0))
	start := lockDate.Add(10 * time.Hour)
	end := lockDate.Add(12 * time.Hour)
	key := SpaceDayLockKey(1, lockDate)

	// Первая попытка упирается в lock_timeout и повторяется целиком
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL lock_timeout = 2000")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(key).
		WillReturnError(&pq.Error{Code: "55P03", Message: "canceling statement due to lock timeout"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL lock_timeout = 2000")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(key).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(sumQuery)).
		WithArgs(int64(1), "cancelled", end, start).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(6)))
	mock.ExpectCommit()

	var committed int
	err := tx.DoLocked(context.Background(), func(ctx context.Context) error {
		if err := repo.LockSpaceDay(ctx, 1, lockDate); err != nil {
			return err
		}
		var err error
		committed, err = repo.SumPeopleOverlapping(ctx, 1, start, end)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 6, committed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceDayLockKey(t *testing.T) {
	assert.Equal(t, SpaceDayLockKey(1, lockDate), SpaceDayLockKey(1, lockDate.Add(15*time.Hour)))
	assert.NotEqual(t, SpaceDayLockKey(1, lockDate), SpaceDayLockKey(2, lockDate))
	assert.NotEqual(t, SpaceDayLockKey(1, lockDate), SpaceDayLockKey(1, lockDate.AddDate(0, 0, 1)))
}

func TestCancel_MissingRowIsNotFound(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, .* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 99, nil)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
