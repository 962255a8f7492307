package space

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/psqlbuilder"
)

// spaceRow строка таблицы spaces
type spaceRow struct {
	ID           int64           `db:"id"`
	OwnerID      int64           `db:"owner_id"`
	Name         string          `db:"name"`
	Capacity     int             `db:"capacity"`
	PricePerHour decimal.Decimal `db:"price_per_hour"`
	Status       string          `db:"status"`
}

func (r spaceRow) toDomain() *domain.Space {
	return &domain.Space{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		PricePerHour: r.PricePerHour,
		Status:       domain.SpaceStatus(r.Status),
	}
}

// Repository репозиторий пространств (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пространств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пространство по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"capacity",
		"price_per_hour",
		"status",
	).
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []spaceRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %w", ErrScanRow, err)
	}

	if len(result) == 0 {
		return nil, ErrSpaceNotFound
	}

	return result[0].toDomain(), nil
}
