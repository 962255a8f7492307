package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) { return nil, nil }
func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (stubTx) Commit() error                                                    { return nil }
func (stubTx) Rollback() error                                                  { return nil }

func TestGetExecutor(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operationOf("  INSERT INTO bookings (a) VALUES ($1)"))
	assert.Equal(t, "select", operationOf("select(1)"))
}
