package domain

import "github.com/shopspring/decimal"

// SpaceStatus represents the operational status of a space
type SpaceStatus string

const (
	SpaceStatusAvailable   SpaceStatus = "available"
	SpaceStatusMaintenance SpaceStatus = "maintenance"
	SpaceStatusDisabled    SpaceStatus = "disabled"
)

// IsValid returns true for a known space status
func (s SpaceStatus) IsValid() bool {
	switch s {
	case SpaceStatusAvailable, SpaceStatusMaintenance, SpaceStatusDisabled:
		return true
	}
	return false
}

// Space represents a bookable resource with a finite people capacity.
// Spaces are owned by the space-management service and are read-only here.
type Space struct {
	ID           int64
	OwnerID      int64
	Name         string
	Capacity     int
	PricePerHour decimal.Decimal
	Status       SpaceStatus
}

// IsBookable returns true if the space accepts new bookings
func (s *Space) IsBookable() bool {
	return s.Status == SpaceStatusAvailable
}

// AcceptsPeople returns true if peopleCount is within the space capacity
func (s *Space) AcceptsPeople(peopleCount int) bool {
	return peopleCount >= MinPeopleCount && peopleCount <= s.Capacity
}
