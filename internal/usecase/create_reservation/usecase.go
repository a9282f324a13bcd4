package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/reservation"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/workinghours"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	"github.com/10xBlitz/chia-sub002/internal/schedule"
	"github.com/10xBlitz/chia-sub002/pkg/ptr"
)

// UseCase books one slot. Client-side availability data is treated as
// stale by definition: everything is re-validated against current data
// inside a serializable transaction, and the ledger's unique index is the
// final arbiter when two bookings race for the last spot.
type UseCase struct {
	reservationRepo  ReservationRepository
	workingHoursRepo WorkingHoursRepository
	configRepo       ConfigRepository
	clinicClient     ClinicServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the usecase.
func NewUseCase(
	reservationRepo ReservationRepository,
	workingHoursRepo WorkingHoursRepository,
	configRepo ConfigRepository,
	clinicClient ClinicServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		workingHoursRepo: workingHoursRepo,
		configRepo:       configRepo,
		clinicClient:     clinicClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute runs the usecase.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: patient=%d, clinic=%d, treatment=%d, date=%s, time=%s",
		req.PatientID, req.ClinicID, req.TreatmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Validate catalog references
	if _, err := uc.clinicClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, clinicservice.ErrClinicNotFound) {
			uc.logger.Warn("CreateReservation: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("CreateReservation: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	treatment, err := uc.clinicClient.GetTreatment(ctx, req.ClinicID, req.TreatmentID)
	if err != nil {
		if errors.Is(err, clinicservice.ErrTreatmentNotFound) {
			uc.logger.Warn("CreateReservation: treatment id=%d not found for clinic id=%d", req.TreatmentID, req.ClinicID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("CreateReservation: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 3. Revalidate and commit inside a serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Resolve scheduling configuration
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.ClinicID, ptr.Ptr(req.TreatmentID))
		if err != nil && !errors.Is(err, clinicconfig.ErrConfigNotFound) {
			uc.logger.Error("CreateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultSlotsConfig()
		}

		// 3.2. Validate the date
		if err := validateDate(req.Date, now, config); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 3.3. Load working hours and rebuild the rule set
		entries, err := uc.workingHoursRepo.GetByClinicID(txCtx, req.ClinicID)
		if err != nil {
			if errors.Is(err, workinghours.ErrNoWorkingHours) {
				uc.logger.Warn("CreateReservation: clinic id=%d has no working hours", req.ClinicID)
				return ErrClinicClosed
			}
			uc.logger.Error("CreateReservation: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		rules := schedule.NewRuleSet(req.ClinicID, entries, uc.logger)
		if len(rules.OpenIntervals(req.Date.Weekday())) == 0 {
			uc.logger.Warn("CreateReservation: clinic id=%d closed on %s", req.ClinicID, req.Date.Format(domain.DateFormat))
			return ErrClinicClosed
		}

		// 3.4. The requested time must be an actual slot of the date
		if !schedule.IsValidSlotStart(rules, req.Date, req.StartTime, config.SlotDurationMinutes) {
			uc.logger.Warn("CreateReservation: %s is not a valid slot for clinic id=%d on %s",
				req.StartTime, req.ClinicID, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 3.5. Advance-notice rule against the current clock
		if err := validateNotice(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
			return err
		}

		// 3.6. Count concurrent holds; the single-date filter locks the
		// day's rows FOR UPDATE inside this transaction
		filter := domain.ClinicReservationsFilter{
			ClinicID:  req.ClinicID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		existing, err := uc.reservationRepo.GetByClinicWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		taken := schedule.CountOverlapping(req.StartTime, config.SlotDurationMinutes, existing)
		if taken >= config.MaxConcurrentReservations {
			uc.logger.Warn("CreateReservation: slot %s taken, %d/%d spots",
				req.StartTime, taken, config.MaxConcurrentReservations)
			return ErrSlotNotAvailable
		}

		// 3.7. Commit; denormalize the treatment snapshot for history
		res := &domain.Reservation{
			ClinicID:        req.ClinicID,
			TreatmentID:     req.TreatmentID,
			PatientID:       req.PatientID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: config.SlotDurationMinutes,
			Status:          domain.StatusActive,
			TreatmentName:   treatment.Name,
			TreatmentPrice:  treatmentPrice(treatment),
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			if errors.Is(err, reservation.ErrSlotTaken) {
				// The unique index caught a race the FOR UPDATE count
				// could not see (e.g. an insert from a competing
				// transaction committing first)
				uc.logger.Warn("CreateReservation: slot %s lost to a concurrent booking", req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d for patient=%d", result.ID, req.PatientID)

	return &Response{
		ID:              result.ID,
		PatientID:       result.PatientID,
		ClinicID:        result.ClinicID,
		TreatmentID:     result.TreatmentID,
		Date:            result.ReservationDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TreatmentName:   result.TreatmentName,
		TreatmentPrice:  result.TreatmentPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// treatmentPrice extracts the price, defaulting to 0 when the clinic has
// not published one.
func treatmentPrice(t *clinicservice.Treatment) float64 {
	if t.Price == nil {
		return 0
	}
	return *t.Price
}
