package get_availability

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	getAvailability "github.com/10xBlitz/chia-sub002/internal/usecase/get_availability"
)

// AvailabilityResponse is the HTTP response model.
type AvailabilityResponse struct {
	ClinicID int64             `json:"clinicId"`
	Days     []DayAvailability `json:"days"`
}

// DayAvailability is the calendar state of one date.
type DayAvailability struct {
	Date  string `json:"date"` // "2026-09-15"
	State string `json:"state"`
}

// ToUseCaseRequest parses the query parameters into a use case request.
func ToUseCaseRequest(clinicID int64, fromStr, toStr string) (*getAvailability.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ClinicID: clinicID,
		From:     from,
		To:       to,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayAvailability{
			Date:  day.Date.Format(domain.DateFormat),
			State: string(day.State),
		}
	}

	return &AvailabilityResponse{
		ClinicID: resp.ClinicID,
		Days:     days,
	}
}
