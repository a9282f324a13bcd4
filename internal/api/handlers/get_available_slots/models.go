package get_available_slots

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	getAvailableSlots "github.com/10xBlitz/chia-sub002/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse is the HTTP response model.
type AvailableSlotsResponse struct {
	ClinicID    int64  `json:"clinicId"`
	TreatmentID int64  `json:"treatmentId"`
	Date        string `json:"date"` // "2026-09-15"
	Slots       []Slot `json:"slots"`
}

// Slot is one bookable slot with its remaining capacity.
type Slot struct {
	StartTime       string `json:"startTime"` // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	State           string `json:"state"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// ToUseCaseRequest parses the raw parameters into a use case request.
func ToUseCaseRequest(clinicID, treatmentID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ClinicID:    clinicID,
		TreatmentID: treatmentID,
		Date:        date,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			State:           string(s.State),
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		ClinicID:    resp.ClinicID,
		TreatmentID: resp.TreatmentID,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
	}
}
