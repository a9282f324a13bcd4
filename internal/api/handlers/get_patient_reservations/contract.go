package get_patient_reservations

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	GetPatientReservations(ctx context.Context, req *models.GetPatientReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
