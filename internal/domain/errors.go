package domain

import "errors"

var (
	// ErrInvalidStatus is returned for an unknown booking status
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrScheduleNotFound is returned by calendar stores when no active schedule applies on a date
	ErrScheduleNotFound = errors.New("domain: no availability schedule applies")
)
