package get_clinic_reservations

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

// ToServiceRequest parses the query parameters into a service request.
// Supplying only one of startDate/endDate treats it as a single-day
// query, which is how the day-sheet view asks for one date.
func ToServiceRequest(clinicID, userID int64, startDateStr, endDateStr, status string, includeCancelled bool) (*models.GetClinicReservationsRequest, error) {
	req := &models.GetClinicReservationsRequest{
		UserID:           userID,
		ClinicID:         clinicID,
		IncludeCancelled: includeCancelled,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate == nil {
		req.EndDate = req.StartDate
	}
	if req.EndDate != nil && req.StartDate == nil {
		req.StartDate = req.EndDate
	}

	if status != "" {
		req.Status = &status
	}

	return req, nil
}
