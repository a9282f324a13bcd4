package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/workinghours"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	"github.com/10xBlitz/chia-sub002/internal/schedule"
	"github.com/10xBlitz/chia-sub002/pkg/ptr"
)

// UseCase answers "which slots can still be booked at this clinic on this
// date". The result is recomputed from working hours and reservations on
// every call; nothing is cached between requests.
type UseCase struct {
	reservationRepo  ReservationRepository
	workingHoursRepo WorkingHoursRepository
	configRepo       ConfigRepository
	clinicClient     ClinicServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the usecase.
func NewUseCase(
	reservationRepo ReservationRepository,
	workingHoursRepo WorkingHoursRepository,
	configRepo ConfigRepository,
	clinicClient ClinicServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		workingHoursRepo: workingHoursRepo,
		configRepo:       configRepo,
		clinicClient:     clinicClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute runs the usecase.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: clinic=%d, treatment=%d, date=%s",
		req.ClinicID, req.TreatmentID, req.Date.Format(domain.DateFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Validate catalog references
	if _, err := uc.clinicClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, clinicservice.ErrClinicNotFound) {
			uc.logger.Warn("GetAvailableSlots: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	if _, err := uc.clinicClient.GetTreatment(ctx, req.ClinicID, req.TreatmentID); err != nil {
		if errors.Is(err, clinicservice.ErrTreatmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: treatment id=%d not found for clinic id=%d", req.TreatmentID, req.ClinicID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	// 3. Resolve scheduling configuration (defaults when absent)
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.ClinicID, ptr.Ptr(req.TreatmentID))
	if err != nil && !errors.Is(err, clinicconfig.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultSlotsConfig()
	}

	// 4. Validate the date against now and the booking horizon
	if err := validateDate(req.Date, now, config); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	emptyResponse := &Response{
		Date:        req.Date,
		ClinicID:    req.ClinicID,
		TreatmentID: req.TreatmentID,
		Slots:       []Slot{},
	}

	// 5. Load working hours; a clinic without any is closed, not broken
	entries, err := uc.workingHoursRepo.GetByClinicID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, workinghours.ErrNoWorkingHours) {
			uc.logger.Info("GetAvailableSlots: clinic id=%d has no working hours, treating as closed", req.ClinicID)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	rules := schedule.NewRuleSet(req.ClinicID, entries, uc.logger)
	if len(rules.OpenIntervals(req.Date.Weekday())) == 0 {
		uc.logger.Info("GetAvailableSlots: clinic id=%d is closed on %s", req.ClinicID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Fetch the date's active reservations
	filter := domain.ClinicReservationsFilter{
		ClinicID:  req.ClinicID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}
	reservations, err := uc.reservationRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 7. Compute slot availability
	slots := schedule.SlotsForDate(rules, req.Date, config.SlotDurationMinutes, reservations, config.MaxConcurrentReservations)

	// 8. The advance-notice rule hides slots starting too soon
	slots = filterByNotice(slots, req.Date, now, config.MinNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for clinic=%d, treatment=%d, date=%s",
		len(slots), req.ClinicID, req.TreatmentID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		ClinicID:    req.ClinicID,
		TreatmentID: req.TreatmentID,
		Slots:       toResponseSlots(slots),
	}, nil
}

// filterByNotice drops slots whose start violates the minimum lead time.
// The comparison is on absolute date+time, so a notice window crossing
// midnight still hides the early slots of the next day.
func filterByNotice(slots []domain.SlotAvailability, date, now time.Time, minNoticeMinutes int) []domain.SlotAvailability {
	day := truncateToDate(date)
	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)

	filtered := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		startMinutes, err := slot.StartTime.Minutes()
		if err != nil {
			continue
		}
		if !day.Add(time.Duration(startMinutes) * time.Minute).Before(earliest) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

func toResponseSlots(slots []domain.SlotAvailability) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			State:           s.State,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		}
	}
	return result
}
