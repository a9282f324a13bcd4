package create_reservation

import (
	"time"

	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// Request is a patient's attempt to book one slot.
type Request struct {
	PatientID   int64
	ClinicID    int64
	TreatmentID int64
	Date        time.Time        // Date only, clinic-local
	StartTime   types.TimeString // Slot start, e.g. "10:30"
	Notes       *string
}

// Response is the committed reservation.
type Response struct {
	ID              int64
	PatientID       int64
	ClinicID        int64
	TreatmentID     int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	TreatmentName  string
	TreatmentPrice float64
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
