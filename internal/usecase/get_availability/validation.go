package get_availability

import (
	"fmt"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

// validateRequest checks the request shape and bounds the range size so a
// single query cannot walk years of calendar.
func validateRequest(req *Request) error {
	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to precedes from", ErrInvalidRange)
	}

	if req.To.Sub(req.From).Hours() > 24*domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxAvailabilityRangeDays)
	}

	return nil
}
