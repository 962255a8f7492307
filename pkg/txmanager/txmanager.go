package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
)

const (
	DefaultMaxRetries  = 3
	DefaultBaseBackoff = 10 * time.Millisecond

	isolationReadCommitted = "read_committed"
	isolationSerializable  = "serializable"
	isolationLocked        = "read_committed_locked"
	isolationReadOnly      = "repeatable_read_ro"
)

// SQLSTATE коды, при которых транзакцию безопасно повторить целиком
var retryableCodes = map[pq.ErrorCode]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

// TxBeginner интерфейс для начала транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// MetricsCollector метрики транзакций (опционально)
type MetricsCollector interface {
	IncTransactionRetry(isolation string)
	ObserveTransaction(isolation string, duration time.Duration, err error)
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithMaxRetries задаёт количество повторов сериализуемой транзакции
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBaseBackoff задаёт базовую задержку между повторами
func WithBaseBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.baseBackoff = d
	}
}

// WithMetrics подключает сбор метрик транзакций
func WithMetrics(c MetricsCollector) Option {
	return func(m *TransactionManager) {
		m.metrics = c
	}
}

// TransactionManager управляет транзакциями, передавая их через context
type TransactionManager struct {
	db          TxBeginner
	metrics     MetricsCollector
	maxRetries  int
	baseBackoff time.Duration
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:          db,
		maxRetries:  DefaultMaxRetries,
		baseBackoff: DefaultBaseBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED без повторов
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, isolationReadCommitted, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции REPEATABLE READ READ ONLY
// Все чтения внутри fn видят один снимок данных
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, isolationReadOnly, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации, дедлоке или таймауте блокировки транзакция повторяется целиком.
// После исчерпания попыток возвращается ErrRetriesExhausted.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.retry(ctx, isolationSerializable, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoLocked выполняет fn в транзакции READ COMMITTED с повторами на дедлок и таймаут блокировки.
// Для операций, которые сами сериализуются явной блокировкой (advisory lock, FOR UPDATE):
// каждый запрос после получения блокировки видит все закоммиченные к этому моменту строки.
func (m *TransactionManager) DoLocked(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.retry(ctx, isolationLocked, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (m *TransactionManager) retry(ctx context.Context, isolation string, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов выполняется в уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.metrics != nil {
				m.metrics.IncTransactionRetry(isolation)
			}
			if err := m.sleep(ctx, attempt); err != nil {
				return err
			}
		}

		lastErr = m.attempt(ctx, opts, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			m.observe(isolation, start, lastErr)
			return lastErr
		}
	}

	err := fmt.Errorf("%w: %d attempts: %v", ErrRetriesExhausted, m.maxRetries+1, lastErr)
	m.observe(isolation, start, err)
	return err
}

func (m *TransactionManager) run(ctx context.Context, isolation string, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	start := time.Now()
	err := m.attempt(ctx, opts, fn)
	m.observe(isolation, start, err)
	return err
}

func (m *TransactionManager) attempt(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}

	return nil
}

func (m *TransactionManager) sleep(ctx context.Context, attempt int) error {
	if m.baseBackoff <= 0 {
		return nil
	}
	delay := m.baseBackoff << (attempt - 1)
	delay += time.Duration(rand.Int63n(int64(m.baseBackoff)))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *TransactionManager) observe(isolation string, start time.Time, err error) {
	if m.metrics != nil {
		m.metrics.ObserveTransaction(isolation, time.Since(start), err)
	}
}

// IsRetryable возвращает true для ошибок конкурентного доступа Postgres
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	_, ok := retryableCodes[pqErr.Code]
	return ok
}
