package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrClinicNotFound is returned when the clinic does not exist
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrAccessDenied is returned when the user has no rights to the reservation
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the reservation cannot be cancelled
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
