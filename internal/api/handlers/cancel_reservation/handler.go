package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgInvalidRequestBody   = "invalid request body"
	msgNotFound             = "reservation not found"
	msgMissingUserID        = "missing user ID"
	msgForbidden            = "access denied"
	msgCannotCancel         = "reservation cannot be cancelled"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil &&
		!errors.Is(err, io.EOF) && !errors.Is(err, handlers.ErrMissingBody) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), reservationID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
