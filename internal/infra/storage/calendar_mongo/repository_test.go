package calendar_mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainSchedule(t *testing.T) {
	end := "2025-12-31"
	doc := &scheduleDocument{
		ScheduleID: 7,
		SpaceID:    3,
		StartDate:  "2025-10-01",
		EndDate:    &end,
		IsActive:   true,
		CreatedAt:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	schedule, err := toDomainSchedule(doc)
	require.NoError(t, err)

	assert.Equal(t, int64(7), schedule.ID)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), schedule.StartDate)
	require.NotNil(t, schedule.EndDate)
	assert.True(t, schedule.AppliesOn(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestToDomainSchedule_InvalidDate(t *testing.T) {
	_, err := toDomainSchedule(&scheduleDocument{ScheduleID: 1, StartDate: "01.10.2025"})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
