package get_available_slots

import (
	"fmt"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

// validateRequest checks the request shape.
func validateRequest(req *Request) error {
	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}
	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate checks the date against "now" and the configured
// advance-booking horizon.
func validateDate(requestDate, now time.Time, config *domain.ClinicSlotsConfig) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	if !config.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := truncateToDate(now).AddDate(0, 0, config.AdvanceBookingDays)
	if truncateToDate(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.AdvanceBookingDays)
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isDateInPast(date, now time.Time) bool {
	return truncateToDate(date).Before(truncateToDate(now))
}
