package clinicservice

import "errors"

var (
	// ErrClinicNotFound is returned when the platform has no such clinic
	ErrClinicNotFound = errors.New("clinicservice: clinic not found")

	// ErrTreatmentNotFound is returned when the clinic does not offer the treatment
	ErrTreatmentNotFound = errors.New("clinicservice: treatment not found")

	// ErrRequestFailed is returned on transport-level failures
	ErrRequestFailed = errors.New("clinicservice: request failed")

	// ErrUnexpectedStatus is returned on unexpected HTTP status codes
	ErrUnexpectedStatus = errors.New("clinicservice: unexpected response status")
)
