package create_reservation

import "errors"

var (
	// ErrClinicNotFound is returned when the clinic does not exist
	ErrClinicNotFound = errors.New("create_reservation: clinic not found")

	// ErrTreatmentNotFound is returned when the clinic does not offer the treatment
	ErrTreatmentNotFound = errors.New("create_reservation: treatment not found")

	// ErrClinicClosed is returned when the clinic is closed on the requested date
	ErrClinicClosed = errors.New("create_reservation: clinic is closed on this date")

	// ErrInvalidDate is returned for dates in the past
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance-booking horizon
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrInvalidTimeSlot is returned when the start time is not a valid
	// slot of the date: outside open hours, inside the lunch break, or
	// off the granularity grid
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook is returned when booking would violate the
	// minimum advance notice
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrSlotNotAvailable is returned when the slot has no free spot
	// left; the caller should offer another slot, this is not a system
	// failure
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_reservation: internal error")
)
