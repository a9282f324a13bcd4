package clinicconfig

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
)

// ConfigRepository is the storage surface for scheduling configuration.
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error)
	GetByClinicAndTreatment(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error)
	GetAllByClinic(ctx context.Context, clinicID int64) ([]*domain.ClinicSlotsConfig, error)
	Update(ctx context.Context, id int64, config *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error)
}

// ClinicServiceClient resolves clinics and treatments for access and
// reference checks.
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error)
	GetTreatment(ctx context.Context, clinicID, treatmentID int64) (*clinicservice.Treatment, error)
}

// Logger is the logging surface of the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
