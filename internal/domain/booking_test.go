package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    BookingStatus
		wantErr bool
	}{
		{input: "pending", want: StatusPending},
		{input: "CONFIRMED", want: StatusConfirmed},
		{input: "paid", want: StatusConfirmed},
		{input: " cancelled ", want: StatusCancelled},
		{input: "in_progress", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBookingStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
}

func TestBooking_OverlapsIsHalfOpen(t *testing.T) {
	b := &Booking{StartAt: at(9, 0), EndAt: at(10, 0), Status: StatusConfirmed}

	assert.False(t, b.Overlaps(at(10, 0), at(11, 0)), "touching end")
	assert.False(t, b.Overlaps(at(8, 0), at(9, 0)), "touching start")
	assert.True(t, b.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, b.Overlaps(at(8, 0), at(12, 0)))
	assert.True(t, b.Overlaps(at(9, 15), at(9, 45)))
}

func TestSumCommittedPeople(t *testing.T) {
	bookings := []*Booking{
		{StartAt: at(9, 0), EndAt: at(10, 0), PeopleCount: 3, Status: StatusConfirmed},
		{StartAt: at(10, 0), EndAt: at(11, 0), PeopleCount: 2, Status: StatusPending},
		{StartAt: at(10, 0), EndAt: at(12, 0), PeopleCount: 5, Status: StatusCancelled},
		{StartAt: at(10, 30), EndAt: at(11, 30), PeopleCount: 4, Status: StatusConfirmed},
	}

	assert.Equal(t, 3, SumCommittedPeople(bookings, at(9, 0), at(10, 0)))
	assert.Equal(t, 6, SumCommittedPeople(bookings, at(10, 0), at(11, 0)))
	assert.Equal(t, 0, SumCommittedPeople(bookings, at(12, 0), at(13, 0)))
}

func TestBooking_TimeOfDay(t *testing.T) {
	b := &Booking{StartAt: at(22, 0), EndAt: at(0, 0).Add(24 * time.Hour)}

	assert.Equal(t, "22:00", b.StartTime().String())
	assert.Equal(t, "24:00", b.EndTime().String())
	assert.Equal(t, at(0, 0), b.Date())
}
