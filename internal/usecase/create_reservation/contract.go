package create_reservation

import (
	"context"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
)

// ReservationRepository is the ledger surface this usecase needs.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
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

// TransactionManager wraps the commit-time revalidation in a serializable
// transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
