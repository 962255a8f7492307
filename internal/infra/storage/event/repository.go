package event

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/psqlbuilder"
)

// Repository журнал обработанных входящих событий (идемпотентность потребителей)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// MarkProcessed записывает событие как обработанное
// Возвращает false, если событие уже было обработано ранее
// Вызывается в той же транзакции, что и изменение бронирования
func (r *Repository) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("processed_events").
		Columns("event_id", "event_type").
		Values(eventID, eventType).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}
