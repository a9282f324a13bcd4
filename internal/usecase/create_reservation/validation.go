package create_reservation

import (
	"fmt"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// validateRequest checks the request shape.
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}
	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateDate checks the date against "now" and the configured
// advance-booking horizon.
func validateDate(reservationDate, now time.Time, config *domain.ClinicSlotsConfig) error {
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	if !config.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := truncateToDate(now).AddDate(0, 0, config.AdvanceBookingDays)
	if truncateToDate(reservationDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.AdvanceBookingDays)
	}

	return nil
}

// validateNotice enforces the minimum lead time between now and the slot
// start. The comparison is on absolute date+time, so a notice window
// crossing midnight still covers next-day slots.
func validateNotice(reservationDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: failed to compute notice window: %v", ErrInternal, err)
	}

	slotStart := truncateToDate(reservationDate).Add(time.Duration(startMinutes) * time.Minute)
	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)

	if slotStart.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isDateInPast(date, now time.Time) bool {
	return truncateToDate(date).Before(truncateToDate(now))
}
