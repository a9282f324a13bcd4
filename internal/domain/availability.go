package domain

import (
	"time"

	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// SlotState classifies a single candidate slot.
type SlotState string

const (
	SlotOpen         SlotState = "open"
	SlotBooked       SlotState = "booked"
	SlotOutsideHours SlotState = "outside_hours"
)

// SlotAvailability is a derived view of one bookable slot. It is never
// persisted; it is recomputed from working hours and reservations on
// every query so it cannot go stale.
type SlotAvailability struct {
	StartTime       types.TimeString
	DurationMinutes int
	State           SlotState
	AvailableSpots  int // Free chairs for this slot
	TotalSpots      int // MaxConcurrentReservations of the effective config
}

// IsBookable returns true if the slot still has a free spot.
func (s *SlotAvailability) IsBookable() bool {
	return s.State == SlotOpen && s.AvailableSpots > 0
}

// DayState classifies a calendar day for the availability roll-up.
type DayState string

const (
	DayFullyOpen       DayState = "fully_open"
	DayPartiallyBooked DayState = "partially_booked"
	DayFullyBooked     DayState = "fully_booked"
	DayClosed          DayState = "closed"
)

// DayAvailability is the per-day roll-up backing calendar dot markers.
type DayAvailability struct {
	Date  time.Time
	State DayState
}
