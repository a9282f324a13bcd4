package clinicconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	configRepo "github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	clinicClient "github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	"github.com/10xBlitz/chia-sub002/internal/service/clinicconfig/models"
)

// Service manages clinic scheduling configuration.
type Service struct {
	configRepo   ConfigRepository
	clinicClient ClinicServiceClient
	logger       Logger
}

// NewService creates the configuration service.
func NewService(
	configRepo ConfigRepository,
	clinicClient ClinicServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:   configRepo,
		clinicClient: clinicClient,
		logger:       logger,
	}
}

// GetAllByClinic fetches every configuration row of the clinic, the
// clinic-wide row first. Available to the clinic owner only.
func (s *Service) GetAllByClinic(ctx context.Context, clinicID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByClinic: fetching configs for clinic=%d by user=%d", clinicID, userID)

	if err := s.checkOwnerAccess(ctx, clinicID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("GetAllByClinic: repository error for clinic=%d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: GetAllByClinic - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByClinic: successfully fetched %d configs for clinic=%d", len(configs), clinicID)
	return models.FromDomainConfigList(configs), nil
}

// GetEffective resolves the configuration that applies to a treatment.
// Priority: treatment-specific > clinic-wide > platform defaults. Public,
// so booking UIs can show slot duration and lead-time rules upfront.
func (s *Service) GetEffective(ctx context.Context, req *models.GetEffectiveConfigRequest) (*models.EffectiveConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for clinic=%d, treatment=%v", req.ClinicID, req.TreatmentID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.ClinicID, req.TreatmentID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no config for clinic=%d, using defaults", req.ClinicID)
			defaults := domain.DefaultSlotsConfig()
			return &models.EffectiveConfigResponse{
				ClinicID:                  req.ClinicID,
				TreatmentID:               req.TreatmentID,
				SlotDurationMinutes:       defaults.SlotDurationMinutes,
				MaxConcurrentReservations: defaults.MaxConcurrentReservations,
				AdvanceBookingDays:        defaults.AdvanceBookingDays,
				MinNoticeMinutes:          defaults.MinNoticeMinutes,
				Level:                     "default",
			}, nil
		}
		s.logger.Error("GetEffective: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	level := "clinic"
	if !config.IsClinicWide() {
		level = "treatment"
	}

	s.logger.Info("GetEffective: successfully fetched config id=%d (level: %s)", config.ID, level)
	return &models.EffectiveConfigResponse{
		ClinicID:                  config.ClinicID,
		TreatmentID:               config.TreatmentID,
		SlotDurationMinutes:       config.SlotDurationMinutes,
		MaxConcurrentReservations: config.MaxConcurrentReservations,
		AdvanceBookingDays:        config.AdvanceBookingDays,
		MinNoticeMinutes:          config.MinNoticeMinutes,
		Level:                     level,
	}, nil
}

// Upsert creates or updates the configuration keyed by
// (clinicId, treatmentId). Available to the clinic owner only. Fields not
// supplied keep their current value, or the platform default when the row
// is new.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: config for clinic=%d, treatment=%v by user=%d", req.ClinicID, req.TreatmentID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.ClinicID, req.UserID); err != nil {
		return nil, err
	}

	// A treatment-specific config must reference a real treatment
	if req.TreatmentID != nil {
		if _, err := s.clinicClient.GetTreatment(ctx, req.ClinicID, *req.TreatmentID); err != nil {
			if errors.Is(err, clinicClient.ErrTreatmentNotFound) {
				s.logger.Warn("Upsert: treatment id=%d not found for clinic=%d", *req.TreatmentID, req.ClinicID)
				return nil, ErrTreatmentNotFound
			}
			s.logger.Error("Upsert: failed to get treatment id=%d: %v", *req.TreatmentID, err)
			return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
		}
	}

	existing, err := s.configRepo.GetByClinicAndTreatment(ctx, req.ClinicID, req.TreatmentID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Upsert: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}

	if existing == nil {
		config := domain.DefaultSlotsConfig()
		config.ClinicID = req.ClinicID
		config.TreatmentID = req.TreatmentID
		req.ApplyToConfig(config)

		if err := s.validateConfigData(config); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return nil, err
		}

		created, err := s.configRepo.Create(ctx, config)
		if err != nil {
			s.logger.Error("Upsert: repository error creating config: %v", err)
			return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Upsert: successfully created config id=%d", created.ID)
		return models.FromDomainConfig(created), nil
	}

	updated := *existing
	req.ApplyToConfig(&updated)

	if err := s.validateConfigData(&updated); err != nil {
		s.logger.Warn("Upsert: validation failed for config id=%d: %v", existing.ID, err)
		return nil, err
	}

	saved, err := s.configRepo.Update(ctx, existing.ID, &updated)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Upsert: config id=%d not found during update", existing.ID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Upsert: repository error for config id=%d: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully updated config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Helpers

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

	if clinic.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of clinic=%d", userID, clinicID)
		return ErrAccessDenied
	}

	return nil
}

// validateConfigData checks the configuration bounds.
func (s *Service) validateConfigData(c *domain.ClinicSlotsConfig) error {
	if c.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if c.MaxConcurrentReservations < domain.MinConcurrentReservations || c.MaxConcurrentReservations > domain.MaxConcurrentReservations {
		return fmt.Errorf("%w: maxConcurrentReservations must be between %d and %d",
			ErrInvalidInput, domain.MinConcurrentReservations, domain.MaxConcurrentReservations)
	}

	if c.AdvanceBookingDays < domain.MinAdvanceBookingDays || c.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if c.MinNoticeMinutes < domain.MinNoticeMinutesLimit || c.MinNoticeMinutes > domain.MaxNoticeMinutesLimit {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutesLimit, domain.MaxNoticeMinutesLimit)
	}

	return nil
}
