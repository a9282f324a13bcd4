package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	getAvailableSlots "github.com/10xBlitz/chia-sub002/internal/usecase/get_available_slots"
)

const (
	msgInvalidClinicID    = "invalid clinic ID"
	msgInvalidTreatmentID = "invalid treatment ID"
	msgMissingTreatmentID = "treatmentId query parameter is required"
	msgMissingDate        = "date query parameter is required"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgClinicNotFound     = "clinic not found"
	msgTreatmentNotFound  = "treatment not found"
	msgInvalidBookingDate = "invalid date"
	msgDateTooFar         = "date is too far in the future"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinics/{clinicId}/available-slots
// Query params: treatmentId (required), date (required, YYYY-MM-DD)
// Public endpoint, powers the slot picker of the booking flow
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicIDStr := vars["clinicId"]
	clinicID, err := strconv.ParseInt(clinicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/available-slots - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	treatmentIDStr := r.URL.Query().Get("treatmentId")
	if treatmentIDStr == "" {
		h.logger.Warn("GET /clinics/{id}/available-slots - Missing treatment ID: clinic_id=%d", clinicID)
		handlers.RespondBadRequest(w, msgMissingTreatmentID)
		return
	}

	treatmentID, err := strconv.ParseInt(treatmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/available-slots - Invalid treatment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTreatmentID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /clinics/{id}/available-slots - Missing date: clinic_id=%d", clinicID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clinicID, treatmentID, dateStr)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrClinicNotFound):
			h.logger.Warn("GET /clinics/{id}/available-slots - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, getAvailableSlots.ErrTreatmentNotFound):
			h.logger.Warn("GET /clinics/{id}/available-slots - Treatment not found: clinic_id=%d, treatment_id=%d",
				clinicID, treatmentID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /clinics/{id}/available-slots - Invalid date: clinic_id=%d, date=%s", clinicID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /clinics/{id}/available-slots - Date too far in future: clinic_id=%d, date=%s",
				clinicID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/available-slots - Invalid input: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		default:
			h.logger.Error("GET /clinics/{id}/available-slots - Failed to get slots: clinic_id=%d, treatment_id=%d, error=%v",
				clinicID, treatmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /clinics/{id}/available-slots - Slots retrieved successfully: clinic_id=%d, treatment_id=%d, slots_count=%d",
		clinicID, treatmentID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
