package get_availability

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
)

// UseCase produces the calendar roll-up: which days of a range are open,
// partially booked, fully booked or closed. Pure derivation from working
// hours and the ledger; the advance-notice rule is a slot-level concern
// and does not apply here.
type UseCase struct {
	reservationRepo  ReservationRepository
	workingHoursRepo WorkingHoursRepository
	configRepo       ConfigRepository
	clinicClient     ClinicServiceClient
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
		logger:           logger,
	}
}

// Execute runs the usecase.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: clinic=%d, from=%s, to=%s",
		req.ClinicID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Validate the clinic exists
	if _, err := uc.clinicClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, clinicservice.ErrClinicNotFound) {
			uc.logger.Warn("GetAvailability: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("GetAvailability: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 3. Resolve the clinic-wide scheduling configuration
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.ClinicID, nil)
	if err != nil && !errors.Is(err, clinicconfig.ErrConfigNotFound) {
		uc.logger.Error("GetAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultSlotsConfig()
	}

	// 4. Load working hours; none at all means every day is closed
	entries, err := uc.workingHoursRepo.GetByClinicID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, workinghours.ErrNoWorkingHours) {
			uc.logger.Info("GetAvailability: clinic id=%d has no working hours, all days closed", req.ClinicID)
			return &Response{ClinicID: req.ClinicID, Days: closedRange(req.From, req.To)}, nil
		}
		uc.logger.Error("GetAvailability: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	rules := schedule.NewRuleSet(req.ClinicID, entries, uc.logger)
	if !rules.HasAnyHours() {
		// Rows existed but none survived validation
		uc.logger.Warn("GetAvailability: clinic id=%d has no valid working hours, all days closed", req.ClinicID)
		return &Response{ClinicID: req.ClinicID, Days: closedRange(req.From, req.To)}, nil
	}

	// 5. Fetch the whole range's active reservations in one query and
	// group them by date
	filter := domain.ClinicReservationsFilter{
		ClinicID:  req.ClinicID,
		StartDate: &req.From,
		EndDate:   &req.To,
	}
	reservations, err := uc.reservationRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	byDate := make(map[string][]*domain.Reservation, len(reservations))
	for _, r := range reservations {
		key := r.ReservationDate.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], r)
	}

	// 6. Roll each date up
	days := make([]domain.DayAvailability, 0, int(req.To.Sub(req.From).Hours()/24)+1)
	for date := req.From; !date.After(req.To); date = date.AddDate(0, 0, 1) {
		slots := schedule.SlotsForDate(
			rules,
			date,
			config.SlotDurationMinutes,
			byDate[date.Format(domain.DateFormat)],
			config.MaxConcurrentReservations,
		)
		days = append(days, domain.DayAvailability{Date: date, State: schedule.DayState(slots)})
	}

	uc.logger.Info("GetAvailability: computed %d days for clinic=%d", len(days), req.ClinicID)

	return &Response{ClinicID: req.ClinicID, Days: days}, nil
}

func closedRange(from, to time.Time) []domain.DayAvailability {
	days := make([]domain.DayAvailability, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		days = append(days, domain.DayAvailability{Date: date, State: domain.DayClosed})
	}
	return days
}
