package get_clinic_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations"
)

const (
	msgInvalidClinicID = "invalid clinic ID"
	msgInvalidParams   = "invalid query parameters"
	msgMissingUserID   = "missing user ID"
	msgClinicNotFound  = "clinic not found"
	msgForbidden       = "access denied"
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

// Handle GET /api/v1/clinics/{clinicId}/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeCancelled
// Available to the clinic owner only
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/reservations - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinics/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	includeCancelled, _ := strconv.ParseBool(query.Get("includeCancelled"))

	req, err := ToServiceRequest(clinicID, userID,
		query.Get("startDate"), query.Get("endDate"), query.Get("status"), includeCancelled)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetClinicReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrClinicNotFound):
			h.logger.Warn("GET /clinics/{id}/reservations - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /clinics/{id}/reservations - Access denied: clinic_id=%d, user_id=%d", clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/reservations - Invalid filter: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /clinics/{id}/reservations - Failed to get reservations: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id}/reservations - Reservations retrieved successfully: clinic_id=%d, count=%d",
		clinicID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
