package cancel_reservation

import "github.com/10xBlitz/chia-sub002/internal/service/reservations/models"

// CancelReservationRequest is the HTTP request model. The body is
// optional, a cancellation without a reason is valid.
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest converts the HTTP request into a service request.
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
