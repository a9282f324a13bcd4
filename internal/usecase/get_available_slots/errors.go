package get_available_slots

import "errors"

var (
	// ErrClinicNotFound is returned when the clinic does not exist
	ErrClinicNotFound = errors.New("get_available_slots: clinic not found")

	// ErrTreatmentNotFound is returned when the clinic does not offer the treatment
	ErrTreatmentNotFound = errors.New("get_available_slots: treatment not found")

	// ErrInvalidDate is returned for dates in the past
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance-booking horizon
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
