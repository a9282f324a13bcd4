package update_clinic_config

import "github.com/10xBlitz/chia-sub002/internal/service/clinicconfig/models"

// UpdateClinicConfigRequest is the HTTP request model. Omitted fields
// keep their current value; for a new row they get the platform default.
type UpdateClinicConfigRequest struct {
	TreatmentID               *int64 `json:"treatmentId,omitempty"` // nil = clinic-wide config
	SlotDurationMinutes       *int   `json:"slotDurationMinutes,omitempty"`
	MaxConcurrentReservations *int   `json:"maxConcurrentReservations,omitempty"`
	AdvanceBookingDays        *int   `json:"advanceBookingDays,omitempty"`
	MinNoticeMinutes          *int   `json:"minNoticeMinutes,omitempty"`
}

// ToServiceRequest converts the HTTP request into a service request.
func (r *UpdateClinicConfigRequest) ToServiceRequest(clinicID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                    userID,
		ClinicID:                  clinicID,
		TreatmentID:               r.TreatmentID,
		SlotDurationMinutes:       r.SlotDurationMinutes,
		MaxConcurrentReservations: r.MaxConcurrentReservations,
		AdvanceBookingDays:        r.AdvanceBookingDays,
		MinNoticeMinutes:          r.MinNoticeMinutes,
	}
}
