package update_clinic_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	clinicConfig "github.com/10xBlitz/chia-sub002/internal/service/clinicconfig"
)

const (
	msgInvalidClinicID    = "invalid clinic ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgClinicNotFound     = "clinic not found"
	msgTreatmentNotFound  = "treatment not found"
	msgForbidden          = "access denied"
	msgInvalidData        = "invalid configuration values"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/clinics/{clinicId}/config
// Creates or updates the configuration keyed by (clinicId, treatmentId),
// owner only
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /clinics/{id}/config - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /clinics/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateClinicConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clinics/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(clinicID, userID))
	if err != nil {
		switch {
		case errors.Is(err, clinicConfig.ErrClinicNotFound):
			h.logger.Warn("PUT /clinics/{id}/config - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, clinicConfig.ErrTreatmentNotFound):
			h.logger.Warn("PUT /clinics/{id}/config - Treatment not found: clinic_id=%d, treatment_id=%v",
				clinicID, req.TreatmentID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, clinicConfig.ErrAccessDenied):
			h.logger.Warn("PUT /clinics/{id}/config - Access denied: clinic_id=%d, user_id=%d", clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, clinicConfig.ErrInvalidInput):
			h.logger.Warn("PUT /clinics/{id}/config - Invalid data: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /clinics/{id}/config - Failed to update config: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clinics/{id}/config - Config updated successfully: clinic_id=%d, config_id=%d",
		clinicID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
