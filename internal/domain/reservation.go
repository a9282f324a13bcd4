package domain

import (
	"time"

	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation.
// Active -> Cancelled is the only transition; reservations are never
// hard-deleted so the booking history stays auditable.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a committed appointment at a clinic.
type Reservation struct {
	ID              int64
	ClinicID        int64
	TreatmentID     int64
	PatientID       int64
	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized treatment data, kept for history even if the clinic
	// later renames or delists the treatment
	TreatmentName  string
	TreatmentPrice float64
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsCancelled returns true if the reservation has been cancelled.
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can still be cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusActive
}

// ClinicReservationsFilter narrows clinic reservation queries.
type ClinicReservationsFilter struct {
	ClinicID         int64              // Required
	StartDate        *time.Time         // Period start (inclusive), nil = unbounded
	EndDate          *time.Time         // Period end (inclusive), nil = unbounded
	Status           *ReservationStatus // Exact status, nil = see IncludeCancelled
	IncludeCancelled bool               // When Status is nil, whether cancelled rows are returned
}
