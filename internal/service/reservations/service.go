package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	reservationRepo "github.com/10xBlitz/chia-sub002/internal/infra/storage/reservation"
	clinicClient "github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	"github.com/10xBlitz/chia-sub002/internal/service/reservations/models"
)

// Service handles reservation retrieval and cancellation.
type Service struct {
	reservationRepo ReservationRepository
	clinicClient    ClinicServiceClient
	logger          Logger
}

// NewService creates the reservations service.
func NewService(
	reservationRepo ReservationRepository,
	clinicClient ClinicServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		clinicClient:    clinicClient,
		logger:          logger,
	}
}

// GetByID fetches one reservation.
// A patient sees only their own reservations; the clinic owner sees any
// reservation of the clinic.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetPatientReservations fetches a patient's reservation history, newest
// first, optionally filtered by status. Patients can only list their own
// history.
func (s *Service) GetPatientReservations(ctx context.Context, req *models.GetPatientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPatientReservations: fetching reservations for patient=%d, status=%v", req.PatientID, req.Status)

	if req.UserID != req.PatientID {
		s.logger.Warn("GetPatientReservations: user=%d requested history of patient=%d", req.UserID, req.PatientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientReservations: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientReservations: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientReservations: successfully fetched %d reservations for patient=%d", len(reservations), req.PatientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetClinicReservations fetches the clinic's reservations with optional
// filtering by period and status. Available to the clinic owner only.
//
// A single-date period (StartDate == EndDate) returns the day sheet in
// chronological order.
func (s *Service) GetClinicReservations(ctx context.Context, req *models.GetClinicReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetClinicReservations: fetching reservations for clinic=%d, user=%d", req.ClinicID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkOwnerAccess(ctx, req.ClinicID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClinicReservations: invalid filter for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClinicReservations: repository error for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClinicReservations: successfully fetched %d reservations for clinic=%d", len(reservations), req.ClinicID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel cancels a reservation and frees its spot.
// A patient can cancel their own reservation, the clinic owner can
// cancel any reservation of the clinic. Cancelling an already cancelled
// reservation of one's own is a no-op so retries stay safe.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason for reservation id=%d exceeds %d characters",
			reservationID, domain.MaxCancellationReasonLength)
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	isOwn := res.PatientID == req.UserID
	if !isOwn {
		if err := s.checkOwnerAccess(ctx, res.ClinicID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	if res.IsCancelled() {
		if isOwn {
			// Idempotent retry of the patient's own cancellation
			s.logger.Info("Cancel: reservation id=%d already cancelled, no-op", reservationID)
			return nil
		}
		s.logger.Warn("Cancel: reservation id=%d already cancelled", reservationID)
		return ErrCannotCancel
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Lost a race with another cancellation of the same row
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Helpers

// checkUserAccess allows the patient who owns the reservation or the
// clinic owner.
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.PatientID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, res.ClinicID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess verifies that the user owns the clinic.
func (s *Service) checkOwnerAccess(ctx context.Context, clinicID int64, userID int64) error {
	clinic, err := s.clinicClient.GetClinic(ctx, clinicID)
	if err != nil {
		if errors.Is(err, clinicClient.ErrClinicNotFound) {
			s.logger.Warn("checkOwnerAccess: clinic id=%d not found", clinicID)
			return ErrClinicNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get clinic id=%d: %v", clinicID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get clinic: %v", ErrInternal, err)
	}

	if clinic.OwnerID == userID {
		return nil
	}

	s.logger.Warn("checkOwnerAccess: user=%d is not the owner of clinic=%d", userID, clinicID)
	return ErrAccessDenied
}
