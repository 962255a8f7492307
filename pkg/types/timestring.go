package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	layout        = "15:04"
)

var (
	// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time is out of day bounds")
)

// TimeString время суток в формате "HH:MM"
// Допускается "24:00" как конец суток (используется для окон, закрывающихся в полночь)
type TimeString string

// NewTimeString создаёт TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// NewTimeStringFromMinutes создаёт TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return fromMinutes(minutes), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes возвращает количество минут от начала суток
// Для некорректного значения возвращает -1
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes возвращает время, сдвинутое на n минут
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal возвращает true, если времена совпадают
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// Sub возвращает длительность t - other
func (t TimeString) Sub(other TimeString) time.Duration {
	return time.Duration(t.Minutes()-other.Minutes()) * time.Minute
}

// On возвращает момент времени t в указанную дату (в локации даты)
func (t TimeString) On(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t.Minutes()) * time.Minute)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner
// Postgres возвращает колонки типа time как "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		// lib/pq отдаёт time '24:00:00' как 0000-01-02 00:00:00
		if v.Year() == 0 && v.YearDay() == 2 && v.Hour() == 0 && v.Minute() == 0 {
			*t = TimeString("24:00")
			return nil
		}
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	if minutes < 0 || minutes > 59 || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hours == 24 && minutes == 0 && seconds == 0 {
		return minutesPerDay, nil
	}
	if hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hours*60 + minutes, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
