package clinicconfig

import "errors"

var (
	// ErrConfigNotFound is returned when no configuration exists
	ErrConfigNotFound = errors.New("config not found")

	// ErrClinicNotFound is returned when the clinic does not exist
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrTreatmentNotFound is returned when the clinic does not offer the treatment
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrAccessDenied is returned when the user does not own the clinic
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned on malformed configuration values
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
