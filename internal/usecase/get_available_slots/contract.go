package get_available_slots

import (
	"context"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
)

// ReservationRepository is the ledger read surface this usecase needs.
type ReservationRepository interface {
	GetByClinicWithFilter(ctx context.Context, filter domain.ClinicReservationsFilter) ([]*domain.Reservation, error)
}

// WorkingHoursRepository reads the clinic's declared weekly pattern.
type WorkingHoursRepository interface {
	GetByClinicID(ctx context.Context, clinicID int64) ([]domain.WorkingHourEntry, error)
}

// ConfigRepository resolves the effective scheduling configuration.
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error)
}

// ClinicServiceClient validates catalog references.
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error)
	GetTreatment(ctx context.Context, clinicID, treatmentID int64) (*clinicservice.Treatment, error)
}

// TimeProvider supplies "now" so the advance-notice rule is testable.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface of the usecase.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
