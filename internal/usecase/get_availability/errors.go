package get_availability

import "errors"

var (
	// ErrClinicNotFound is returned when the clinic does not exist
	ErrClinicNotFound = errors.New("get_availability: clinic not found")

	// ErrInvalidRange is returned on a malformed or oversized date range
	ErrInvalidRange = errors.New("get_availability: invalid date range")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("get_availability: internal error")
)
