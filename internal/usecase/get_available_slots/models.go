package get_available_slots

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// Request asks for the bookable slots of one clinic on one date.
type Request struct {
	ClinicID    int64
	TreatmentID int64
	Date        time.Time // Date only, clinic-local
}

// Response lists the remaining bookable slots.
type Response struct {
	Date        time.Time
	ClinicID    int64
	TreatmentID int64
	Slots       []Slot
}

// Slot is one candidate slot with its remaining capacity.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	State           domain.SlotState
	AvailableSpots  int
	TotalSpots      int
}
