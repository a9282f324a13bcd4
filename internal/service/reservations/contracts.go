package reservations

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
)

// ReservationRepository is the ledger surface for reservation retrieval
// and cancellation.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByClinicWithFilter(ctx context.Context, filter domain.ClinicReservationsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason *string) error
}

// ClinicServiceClient resolves clinic ownership for access checks.
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error)
}

// Logger is the logging surface of the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
