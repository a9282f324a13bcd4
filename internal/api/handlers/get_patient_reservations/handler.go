package get_patient_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

const (
	msgInvalidPatientID = "invalid patient ID"
	msgInvalidStatus    = "invalid status filter"
	msgMissingUserID    = "missing user ID"
	msgForbidden        = "access denied"
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

// Handle GET /api/v1/patients/{patientId}/reservations
// Query params: status (optional, "active" or "cancelled")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientIDStr := vars["patientId"]

	patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{id}/reservations - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /patients/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetPatientReservationsRequest{
		UserID:    userID,
		PatientID: patientID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetPatientReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /patients/{id}/reservations - Access denied: patient_id=%d, user_id=%d",
				patientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /patients/{id}/reservations - Invalid status: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /patients/{id}/reservations - Failed to get reservations: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id}/reservations - Reservations retrieved successfully: patient_id=%d, count=%d",
		patientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
