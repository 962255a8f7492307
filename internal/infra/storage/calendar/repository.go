package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

type scheduleRow struct {
	ID        int64      `db:"id"`
	SpaceID   int64      `db:"space_id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
}

type periodRow struct {
	ID          int64            `db:"id"`
	ScheduleID  int64            `db:"schedule_id"`
	Date        time.Time        `db:"date"`
	StartTime   types.TimeString `db:"start_time"`
	EndTime     types.TimeString `db:"end_time"`
	IsAvailable bool             `db:"is_available"`
}

// Repository репозиторий расписаний доступности в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveSchedule получает активное расписание пространства, действующее на дату
// Если подходит несколько расписаний, выбирается созданное последним
func (r *Repository) GetActiveSchedule(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(
		"id",
		"space_id",
		"name",
		"start_date",
		"end_date",
		"is_active",
		"created_at",
	).
		From("availability_schedules").
		Where(squirrel.Eq{"space_id": spaceID, "is_active": true}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": day},
		}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []scheduleRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSchedule - scan schedule: %w", ErrScanRow, err)
	}

	if len(result) == 0 {
		return nil, domain.ErrScheduleNotFound
	}

	row := result[0]
	return &domain.AvailabilitySchedule{
		ID:        row.ID,
		SpaceID:   row.SpaceID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}, nil
}

// GetOpenWindows получает открытые периоды расписания на дату
// Упорядочены по start_time, end_time, id
func (r *Repository) GetOpenWindows(ctx context.Context, scheduleID int64, date time.Time) ([]*domain.OpenWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"date",
		"start_time",
		"end_time",
		"is_available",
	).
		From("availability_periods").
		Where(squirrel.Eq{
			"schedule_id":  scheduleID,
			"date":         date.Format(domain.DateFormat),
			"is_available": true,
		}).
		OrderBy("start_time ASC", "end_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []periodRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows - scan periods: %w", ErrScanRow, err)
	}

	windows := make([]*domain.OpenWindow, 0, len(result))
	for _, row := range result {
		windows = append(windows, &domain.OpenWindow{
			ID:          row.ID,
			ScheduleID:  row.ScheduleID,
			Date:        domain.DateOnly(date),
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			IsAvailable: row.IsAvailable,
		})
	}

	return windows, nil
}
