package event

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
)

const insertPattern = `INSERT INTO processed_events \(event_id,\s?event_type\) VALUES \(\$1,\s?\$2\) ON CONFLICT \(event_id\) DO NOTHING`

func TestMarkProcessed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectExec(insertPattern).
		WithArgs("evt-1", "payment.succeeded").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertPattern).
		WithArgs("evt-1", "payment.succeeded").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertPattern).
		WithArgs("evt-2", "payment.succeeded").
		WillReturnError(errors.New("connection reset"))

	fresh, err := repo.MarkProcessed(context.Background(), "evt-1", "payment.succeeded")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = repo.MarkProcessed(context.Background(), "evt-1", "payment.succeeded")
	require.NoError(t, err)
	assert.False(t, fresh)

	_, err = repo.MarkProcessed(context.Background(), "evt-2", "payment.succeeded")
	assert.ErrorIs(t, err, ErrExecQuery)

	assert.NoError(t, mock.ExpectationsWereMet())
}
