package calendar_mongo

import "time"

// scheduleDocument расписание с вложенными периодами
// Даты хранятся строками YYYY-MM-DD, время строками HH:MM
type scheduleDocument struct {
	ScheduleID int64            `bson:"schedule_id"`
	SpaceID    int64            `bson:"space_id"`
	Name       string           `bson:"name"`
	StartDate  string           `bson:"start_date"`
	EndDate    *string          `bson:"end_date,omitempty"`
	IsActive   bool             `bson:"is_active"`
	CreatedAt  time.Time        `bson:"created_at"`
	Periods    []periodDocument `bson:"periods"`
}

type periodDocument struct {
	PeriodID    int64  `bson:"period_id"`
	Date        string `bson:"date"`
	StartTime   string `bson:"start_time"`
	EndTime     string `bson:"end_time"`
	IsAvailable bool   `bson:"is_available"`
}
