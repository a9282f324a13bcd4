package get_clinic_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	clinicConfig "github.com/10xBlitz/chia-sub002/internal/service/clinicconfig"
	"github.com/10xBlitz/chia-sub002/internal/service/clinicconfig/models"
)

const (
	msgInvalidClinicID    = "invalid clinic ID"
	msgInvalidTreatmentID = "invalid treatment ID"
	msgMissingUserID      = "missing user ID"
	msgClinicNotFound     = "clinic not found"
	msgForbidden          = "access denied"
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

// Handle GET /api/v1/clinics/{clinicId}/config
// Query params: treatmentId (optional)
// Public endpoint, returns the effective configuration after hierarchy
// resolution so booking UIs can show slot duration and lead-time rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/config - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	req := &models.GetEffectiveConfigRequest{ClinicID: clinicID}

	if treatmentIDStr := r.URL.Query().Get("treatmentId"); treatmentIDStr != "" {
		treatmentID, err := strconv.ParseInt(treatmentIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /clinics/{id}/config - Invalid treatment ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTreatmentID)
			return
		}
		req.TreatmentID = &treatmentID
	}

	result, err := h.service.GetEffective(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /clinics/{id}/config - Failed to get config: clinic_id=%d, error=%v", clinicID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clinics/{id}/config - Config retrieved successfully: clinic_id=%d, level=%s",
		clinicID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/clinics/{clinicId}/configs
// Lists every configuration row of the clinic, owner only
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/configs - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinics/{id}/configs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetAllByClinic(r.Context(), clinicID, userID)
	if err != nil {
		switch {
		case errors.Is(err, clinicConfig.ErrClinicNotFound):
			h.logger.Warn("GET /clinics/{id}/configs - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, clinicConfig.ErrAccessDenied):
			h.logger.Warn("GET /clinics/{id}/configs - Access denied: clinic_id=%d, user_id=%d", clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clinics/{id}/configs - Failed to get configs: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id}/configs - Configs retrieved successfully: clinic_id=%d, count=%d",
		clinicID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
