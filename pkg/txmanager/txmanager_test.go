package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	commitErrs []error
	txs        []*fakeTx
	opts       []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if len(b.txs) < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[len(b.txs)]
	}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationFailure(), serializationFailure()}}
	m := NewTransactionManager(db, WithMaxRetries(3), WithBaseBackoff(0))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, db.txs, 3)
	assert.True(t, db.txs[2].committed)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{
		serializationFailure(), serializationFailure(), serializationFailure(),
	}}
	m := NewTransactionManager(db, WithMaxRetries(2), WithBaseBackoff(0))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Len(t, db.txs, 3)
}

func TestDoSerializable_RetriesWrappedStatementErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(1), WithBaseBackoff(0))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("repo: exec: %w", &pq.Error{Code: "40P01"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_DoesNotRetryDomainErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithBaseBackoff(0))
	domainErr := errors.New("slot not open")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return domainErr
	})

	assert.ErrorIs(t, err, domainErr)
	assert.Equal(t, 1, calls)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoLocked_ReadCommittedWithLockRetries(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(2), WithBaseBackoff(0))

	calls := 0
	err := m.DoLocked(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("repo: lock: %w", &pq.Error{Code: "55P03"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.opts, 2)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
	assert.False(t, db.opts[0].ReadOnly)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].committed)
}

func TestDoLocked_ExhaustsRetries(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(1), WithBaseBackoff(0))

	err := m.DoLocked(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40P01"}
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Len(t, db.txs, 2)
}

func TestDoReadOnly_UsesReadOnlySnapshot(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	require.NoError(t, m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil }))

	require.Len(t, db.opts, 1)
	assert.True(t, db.opts[0].ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, db.opts[0].Isolation)
}

func TestNestedCallsReuseTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(fmt.Errorf("wrap: %w", &pq.Error{Code: "55P03"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("40001")))
}
