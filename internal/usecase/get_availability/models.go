package get_availability

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

// Request asks for the per-day availability roll-up of a date range,
// both endpoints inclusive.
type Request struct {
	ClinicID int64
	From     time.Time
	To       time.Time
}

// Response carries one entry per calendar day in the range, in order.
type Response struct {
	ClinicID int64
	Days     []domain.DayAvailability
}
