package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"space_id",
	"user_id",
	"start_at",
	"end_at",
	"people_count",
	"status",
	"total_price",
	"payment_reference",
	"paid_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
// Ошибки драйвера оборачиваются через %w, чтобы менеджер транзакций распознал конфликт сериализации
type Repository struct {
	db          DBExecutor
	lockTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// WithLockTimeout задаёт lock_timeout для ожидания блокировки пространства на дату
func (r *Repository) WithLockTimeout(d time.Duration) *Repository {
	r.lockTimeout = d
	return r
}

// Create создает новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"space_id",
			"user_id",
			"start_at",
			"end_at",
			"people_count",
			"status",
			"total_price",
		).
		Values(
			booking.SpaceID,
			booking.UserID,
			booking.StartAt,
			booking.EndAt,
			booking.PeopleCount,
			booking.Status,
			booking.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) для смены статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя (сначала новые)
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("start_at DESC", "id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveBySpaceAndRange получает активные бронирования пространства, пересекающие [from, to)
// Используется для расчёта слотов на дату одним запросом
func (r *Repository) GetActiveBySpaceAndRange(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpaceAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpaceAndRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// SumPeopleOverlapping суммирует people_count активных бронирований, пересекающих [start, end)
// Касание границ пересечением не считается; pending бронирования учитываются
func (r *Repository) SumPeopleOverlapping(ctx context.Context, spaceID int64, start, end time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(people_count), 0)").
		From("bookings").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumPeopleOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumPeopleOverlapping - scan sum: %w", ErrScanRow, err)
	}

	return total, nil
}

// LockSpaceDay берёт транзакционную advisory-блокировку на пару (пространство, дата)
// Блокировка снимается при завершении транзакции
func (r *Repository) LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if r.lockTimeout > 0 {
		setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())
		if _, err := executor.ExecContext(ctx, setTimeout); err != nil {
			return fmt.Errorf("%w: LockSpaceDay - set lock_timeout: %w", ErrExecQuery, err)
		}
	}

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", SpaceDayLockKey(spaceID, date)); err != nil {
		return fmt.Errorf("%w: LockSpaceDay - acquire lock: %w", ErrExecQuery, err)
	}

	return nil
}

// Confirm переводит бронирование в confirmed и сохраняет данные оплаты
func (r *Repository) Confirm(ctx context.Context, id int64, paymentReference *string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_reference", paymentReference).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "Confirm", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SpaceDayLockKey ключ advisory-блокировки для пары (пространство, дата)
// Коллизии ключей только сериализуют лишние транзакции и не нарушают корректность
func SpaceDayLockKey(spaceID int64, date time.Time) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "booking:%d:%s", spaceID, date.Format(domain.DateFormat))
	return int64(h.Sum64())
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SpaceID,
		&booking.UserID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.PeopleCount,
		&booking.Status,
		&booking.TotalPrice,
		&booking.PaymentReference,
		&booking.PaidAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
