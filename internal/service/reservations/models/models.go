package models

import (
	"errors"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

var (
	// ErrInvalidStatus is returned on an unknown status string
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request models

// CancelReservationRequest cancels one reservation.
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetPatientReservationsRequest lists a patient's reservation history.
type GetPatientReservationsRequest struct {
	UserID    int64   `json:"userId"`
	PatientID int64   `json:"patientId"`
	Status    *string `json:"status,omitempty"`
}

// GetClinicReservationsRequest lists a clinic's reservations with
// optional filtering by period and status.
type GetClinicReservationsRequest struct {
	UserID           int64      `json:"userId"`
	ClinicID         int64      `json:"clinicId"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter converts the request into a domain filter.
func (r *GetClinicReservationsRequest) ToDomainFilter() (domain.ClinicReservationsFilter, error) {
	filter := domain.ClinicReservationsFilter{
		ClinicID:         r.ClinicID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// ReservationResponse is one reservation as exposed to clients.
type ReservationResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	ClinicID        int64  `json:"clinicId"`
	TreatmentID     int64  `json:"treatmentId"`
	ReservationDate string `json:"reservationDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Denormalized treatment snapshot
	TreatmentName  string  `json:"treatmentName"`
	TreatmentPrice float64 `json:"treatmentPrice"`
	Notes          *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse is a list of reservations.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation converts a domain model into a DTO.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		PatientID:          r.PatientID,
		ClinicID:           r.ClinicID,
		TreatmentID:        r.TreatmentID,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		TreatmentName:      r.TreatmentName,
		TreatmentPrice:     r.TreatmentPrice,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList converts a list of domain models into a DTO.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}

	return resp
}

// ToDomainReservationStatus converts a status string with validation.
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	switch s {
	case domain.StatusActive, domain.StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
