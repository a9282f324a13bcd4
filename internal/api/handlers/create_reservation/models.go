package create_reservation

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	createReservation "github.com/10xBlitz/chia-sub002/internal/usecase/create_reservation"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// CreateReservationRequest is the HTTP request model. The patient ID
// comes from the authenticated context, not the body.
type CreateReservationRequest struct {
	ClinicID        int64   `json:"clinicId"`
	TreatmentID     int64   `json:"treatmentId"`
	ReservationDate string  `json:"reservationDate"` // "2026-09-15"
	StartTime       string  `json:"startTime"`       // "10:30"
	Notes           *string `json:"notes,omitempty"`
}

// ReservationResponse is the HTTP response model.
type ReservationResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	ClinicID        int64   `json:"clinicId"`
	TreatmentID     int64   `json:"treatmentId"`
	ReservationDate string  `json:"reservationDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TreatmentName   string  `json:"treatmentName"`
	TreatmentPrice  float64 `json:"treatmentPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest parses the HTTP request into a use case request.
func (r *CreateReservationRequest) ToUseCaseRequest(patientID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		PatientID:   patientID,
		ClinicID:    r.ClinicID,
		TreatmentID: r.TreatmentID,
		Date:        date,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		ClinicID:        resp.ClinicID,
		TreatmentID:     resp.TreatmentID,
		ReservationDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TreatmentName:   resp.TreatmentName,
		TreatmentPrice:  resp.TreatmentPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
