package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// AvailabilitySchedule is a dated availability definition for a space.
// Several schedules may exist for one space; only active ones covering a date apply.
type AvailabilitySchedule struct {
	ID        int64
	SpaceID   int64
	Name      string
	StartDate time.Time
	EndDate   *time.Time
	IsActive  bool
	CreatedAt time.Time
}

// AppliesOn returns true if the schedule is active and its date range contains date
func (s *AvailabilitySchedule) AppliesOn(date time.Time) bool {
	if !s.IsActive {
		return false
	}
	d := DateOnly(date)
	if d.Before(DateOnly(s.StartDate)) {
		return false
	}
	return s.EndDate == nil || !d.After(DateOnly(*s.EndDate))
}

// PickSchedule returns the schedule applying on date.
// When several apply, the most recently created one wins (ties broken by the highest ID).
func PickSchedule(schedules []*AvailabilitySchedule, date time.Time) *AvailabilitySchedule {
	var picked *AvailabilitySchedule
	for _, s := range schedules {
		if !s.AppliesOn(date) {
			continue
		}
		if picked == nil ||
			s.CreatedAt.After(picked.CreatedAt) ||
			(s.CreatedAt.Equal(picked.CreatedAt) && s.ID > picked.ID) {
			picked = s
		}
	}
	return picked
}

// OpenWindow is an open (start, end) interval of a schedule on a concrete date
type OpenWindow struct {
	ID          int64
	ScheduleID  int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Covers returns true if [start, end) lies entirely within the window
func (w *OpenWindow) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// DurationHours returns the window length in hours
func (w *OpenWindow) DurationHours() float64 {
	return w.EndTime.Sub(w.StartTime).Hours()
}

// StartAt returns the window start on its date
func (w *OpenWindow) StartAt() time.Time {
	return w.StartTime.On(w.Date)
}

// EndAt returns the window end on its date
func (w *OpenWindow) EndAt() time.Time {
	return w.EndTime.On(w.Date)
}

// SortWindows orders windows by start time, then end time, then ID.
// Overlapping windows are kept as they are.
func SortWindows(windows []*OpenWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.IsBefore(b.StartTime)
		}
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.IsBefore(b.EndTime)
		}
		return a.ID < b.ID
	})
}

// DayAvailability tells whether a space has any open window on a date
type DayAvailability struct {
	Date            time.Time
	HasAvailability bool
}

// DateOnly truncates t to midnight in its location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDateBefore compares calendar dates of a and b, ignoring time of day and location
func IsDateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
