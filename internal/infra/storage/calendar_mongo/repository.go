package calendar_mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

const DefaultCollection = "availability_schedules"

// Repository хранилище расписаний доступности в MongoDB
type Repository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewRepository создает репозиторий поверх коллекции расписаний
func NewRepository(db *mongo.Database, collection string, timeout time.Duration) *Repository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Repository{
		collection: db.Collection(collection),
		timeout:    timeout,
	}
}

// EnsureIndexes создает индекс для выборки активного расписания пространства
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "space_id", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "schedule_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %w", ErrQuery, err)
	}
	return nil
}

// GetActiveSchedule получает активное расписание пространства, действующее на дату
func (r *Repository) GetActiveSchedule(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilitySchedule, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	day := date.Format(domain.DateFormat)
	filter := bson.M{
		"space_id":   spaceID,
		"is_active":  true,
		"start_date": bson.M{"$lte": day},
		"$or": bson.A{
			bson.M{"end_date": bson.M{"$exists": false}},
			bson.M{"end_date": nil},
			bson.M{"end_date": bson.M{"$gte": day}},
		},
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "schedule_id", Value: -1}}).
		SetProjection(bson.M{"periods": 0})

	var doc scheduleDocument
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("%w: GetActiveSchedule: %w", ErrQuery, err)
	}

	return toDomainSchedule(&doc)
}

// GetOpenWindows получает открытые периоды расписания на дату
func (r *Repository) GetOpenWindows(ctx context.Context, scheduleID int64, date time.Time) ([]*domain.OpenWindow, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc scheduleDocument
	err := r.collection.FindOne(ctx, bson.M{"schedule_id": scheduleID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []*domain.OpenWindow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows: %w", ErrQuery, err)
	}

	day := date.Format(domain.DateFormat)
	windows := make([]*domain.OpenWindow, 0)
	for _, p := range doc.Periods {
		if p.Date != day || !p.IsAvailable {
			continue
		}
		start, err := types.NewTimeStringFromString(p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d start_time: %v", ErrInvalidDocument, p.PeriodID, err)
		}
		end, err := types.NewTimeStringFromString(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d end_time: %v", ErrInvalidDocument, p.PeriodID, err)
		}
		windows = append(windows, &domain.OpenWindow{
			ID:          p.PeriodID,
			ScheduleID:  doc.ScheduleID,
			Date:        domain.DateOnly(date),
			StartTime:   start,
			EndTime:     end,
			IsAvailable: true,
		})
	}

	domain.SortWindows(windows)
	return windows, nil
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func toDomainSchedule(doc *scheduleDocument) (*domain.AvailabilitySchedule, error) {
	startDate, err := time.Parse(domain.DateFormat, doc.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule %d start_date: %v", ErrInvalidDocument, doc.ScheduleID, err)
	}

	schedule := &domain.AvailabilitySchedule{
		ID:        doc.ScheduleID,
		SpaceID:   doc.SpaceID,
		Name:      doc.Name,
		StartDate: startDate,
		IsActive:  doc.IsActive,
		CreatedAt: doc.CreatedAt,
	}

	if doc.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *doc.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %d end_date: %v", ErrInvalidDocument, doc.ScheduleID, err)
		}
		schedule.EndDate = &endDate
	}

	return schedule, nil
}
