package cancel_reservation

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
