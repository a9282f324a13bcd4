package create_reservation

import (
	"errors"
	"net/http"

	"github.com/10xBlitz/chia-sub002/internal/api/handlers"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	createReservation "github.com/10xBlitz/chia-sub002/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user ID"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgClinicNotFound     = "clinic not found"
	msgTreatmentNotFound  = "treatment not found"
	msgClinicClosed       = "the clinic is closed on the selected date"
	msgInvalidDate        = "invalid reservation date"
	msgDateTooFar         = "reservation date is too far in the future"
	msgInvalidTimeSlot    = "invalid time slot"
	msgTooLateToBook      = "too late to book this slot"
	msgInvalidInput       = "invalid reservation data"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrClinicNotFound):
			h.logger.Warn("POST /reservations - Clinic not found: clinic_id=%d", req.ClinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, createReservation.ErrTreatmentNotFound):
			h.logger.Warn("POST /reservations - Treatment not found: clinic_id=%d, treatment_id=%d",
				req.ClinicID, req.TreatmentID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, createReservation.ErrClinicClosed):
			h.logger.Warn("POST /reservations - Clinic closed: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondBadRequest(w, msgClinicClosed)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: patient_id=%d, clinic_id=%d", patientID, req.ClinicID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: patient_id=%d, clinic_id=%d, error=%v",
				patientID, req.ClinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, patient_id=%d, clinic_id=%d",
		result.ID, patientID, req.ClinicID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
