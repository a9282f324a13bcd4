package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	getAvailability "github.com/10xBlitz/chia-sub002/internal/usecase/get_availability"
)

const (
	msgInvalidClinicID = "invalid clinic ID"
	msgMissingRange    = "from and to query parameters are required"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgInvalidRange    = "invalid date range"
	msgClinicNotFound  = "clinic not found"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinics/{clinicId}/availability
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
// Public endpoint, powers the booking calendar view
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicIDStr := vars["clinicId"]

	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/availability - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /clinics/{id}/availability - Missing date range: clinic_id=%d", clinicID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clinicID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrClinicNotFound):
			h.logger.Warn("GET /clinics/{id}/availability - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, getAvailability.ErrInvalidRange),
			errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/availability - Invalid range: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /clinics/{id}/availability - Failed to get availability: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /clinics/{id}/availability - Availability retrieved successfully: clinic_id=%d, days=%d",
		clinicID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
