package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaceBooking/pkg/ptr"
)

var paidAt = time.Date(2030, 1, 5, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]string, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}

func newService(t *testing.T) (*Service, *memory.Store, *fakePublisher) {
	t.Helper()

	store := memory.NewStore()
	publisher := &fakePublisher{}
	svc := NewService(store.Bookings(), store.Events(), store.TxManager(), publisher, nopLogger{})
	svc.timeProvider = fixedTime{t: paidAt}
	return svc, store, publisher
}

func seedBooking(t *testing.T, store *memory.Store, userID int64, start time.Time) *domain.Booking {
	t.Helper()

	var created *domain.Booking
	err := store.TxManager().Do(context.Background(), func(ctx context.Context) error {
		var err error
		created, err = store.Bookings().Create(ctx, &domain.Booking{
			SpaceID:     1,
			UserID:      userID,
			StartAt:     start,
			EndAt:       start.Add(2 * time.Hour),
			PeopleCount: 3,
			Status:      domain.StatusPending,
			TotalPrice:  decimal.NewFromInt(90),
		})
		return err
	})
	require.NoError(t, err)
	return created
}

func TestGetByID_OnlyOwner(t *testing.T) {
	svc, store, _ := newService(t)
	b := seedBooking(t, store, 7, paidAt.Add(48*time.Hour))

	resp, err := svc.GetByID(context.Background(), b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "90.00", resp.TotalPrice)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(context.Background(), b.ID, 8)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetByID(context.Background(), 999, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_NewestFirstWithStatusFilter(t *testing.T) {
	svc, store, _ := newService(t)
	older := seedBooking(t, store, 7, paidAt.Add(24*time.Hour))
	newer := seedBooking(t, store, 7, paidAt.Add(72*time.Hour))
	seedBooking(t, store, 8, paidAt.Add(48*time.Hour))

	_, err := svc.Cancel(context.Background(), older.ID, &models.CancelBookingRequest{UserID: 7})
	require.NoError(t, err)

	all, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
	require.NoError(t, err)
	require.Len(t, all.Bookings, 2)
	assert.Equal(t, newer.ID, all.Bookings[0].ID)
	assert.Equal(t, older.ID, all.Bookings[1].ID)

	cancelled, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, cancelled.Bookings, 1)
	assert.Equal(t, older.ID, cancelled.Bookings[0].ID)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	svc, store, publisher := newService(t)
	b := seedBooking(t, store, 7, paidAt.Add(24*time.Hour))
	ctx := context.Background()

	_, err := svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{UserID: 8})
	assert.ErrorIs(t, err, ErrUnauthorized)

	resp, err := svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{UserID: 7, CancellationReason: ptr.Ptr("plans changed")})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "plans changed", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)

	_, err = svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	_, err = svc.Cancel(ctx, 999, &models.CancelBookingRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, []string{domain.EventBookingCancelled}, publisher.types())
}

func TestConfirm_IsIdempotent(t *testing.T) {
	svc, store, publisher := newService(t)
	b := seedBooking(t, store, 7, paidAt.Add(24*time.Hour))
	ctx := context.Background()

	first, err := svc.Confirm(ctx, b.ID, &models.ConfirmBookingRequest{PaymentReference: ptr.Ptr("pi_1")})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", first.Status)
	require.NotNil(t, first.PaidAt)
	assert.Equal(t, paidAt.Format(time.RFC3339), *first.PaidAt)

	second, err := svc.Confirm(ctx, b.ID, &models.ConfirmBookingRequest{PaymentReference: ptr.Ptr("pi_2")})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", second.Status)
	assert.Equal(t, "pi_1", *second.PaymentReference)

	assert.Equal(t, []string{domain.EventBookingConfirmed}, publisher.types())
}

func TestConfirm_CancelledBookingIsInvalidState(t *testing.T) {
	svc, store, _ := newService(t)
	b := seedBooking(t, store, 7, paidAt.Add(24*time.Hour))
	ctx := context.Background()

	_, err := svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{UserID: 7})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, b.ID, &models.ConfirmBookingRequest{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmPayment_SkipsDuplicateEvents(t *testing.T) {
	svc, store, publisher := newService(t)
	b := seedBooking(t, store, 7, paidAt.Add(24*time.Hour))
	ctx := context.Background()

	req := &models.PaymentSucceededRequest{EventID: "evt-1", BookingID: b.ID, PaymentReference: ptr.Ptr("pi_1")}

	require.NoError(t, svc.ConfirmPayment(ctx, req))
	require.NoError(t, svc.ConfirmPayment(ctx, req))

	stored, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, []string{domain.EventBookingConfirmed}, publisher.types())
}

func TestConfirmPayment_FailedConfirmationCanBeRedelivered(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	err := svc.ConfirmPayment(ctx, &models.PaymentSucceededRequest{EventID: "evt-2", BookingID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// Событие не отмечено: транзакция откатилась вместе с отметкой
	fresh, err := store.Events().MarkProcessed(ctx, "evt-2", PaymentSucceededEvent)
	require.NoError(t, err)
	assert.True(t, fresh)

	err = svc.ConfirmPayment(ctx, &models.PaymentSucceededRequest{BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
