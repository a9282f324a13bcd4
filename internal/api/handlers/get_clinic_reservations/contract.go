package get_clinic_reservations

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	GetClinicReservations(ctx context.Context, req *models.GetClinicReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
