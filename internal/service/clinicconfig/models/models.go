package models

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

// Request models

// UpsertConfigRequest creates or updates the configuration keyed by
// (clinicId, treatmentId). All value fields are optional so a partial
// update only touches the supplied settings.
type UpsertConfigRequest struct {
	UserID                    int64  `json:"userId"`
	ClinicID                  int64  `json:"clinicId"`
	TreatmentID               *int64 `json:"treatmentId,omitempty"` // NULL = clinic-wide
	SlotDurationMinutes       *int   `json:"slotDurationMinutes,omitempty"`
	MaxConcurrentReservations *int   `json:"maxConcurrentReservations,omitempty"`
	AdvanceBookingDays        *int   `json:"advanceBookingDays,omitempty"`
	MinNoticeMinutes          *int   `json:"minNoticeMinutes,omitempty"`
}

// ApplyToConfig overlays the supplied fields onto an existing config.
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.ClinicSlotsConfig) {
	if r.SlotDurationMinutes != nil {
		config.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.MaxConcurrentReservations != nil {
		config.MaxConcurrentReservations = *r.MaxConcurrentReservations
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinNoticeMinutes != nil {
		config.MinNoticeMinutes = *r.MinNoticeMinutes
	}
}

// GetEffectiveConfigRequest asks for the configuration that actually
// applies to a treatment after hierarchy resolution.
type GetEffectiveConfigRequest struct {
	ClinicID    int64  `json:"clinicId"`
	TreatmentID *int64 `json:"treatmentId,omitempty"`
}

// Response models

// ConfigResponse is one configuration row.
type ConfigResponse struct {
	ID                        int64     `json:"id"`
	ClinicID                  int64     `json:"clinicId"`
	TreatmentID               *int64    `json:"treatmentId,omitempty"`
	SlotDurationMinutes       int       `json:"slotDurationMinutes"`
	MaxConcurrentReservations int       `json:"maxConcurrentReservations"`
	AdvanceBookingDays        int       `json:"advanceBookingDays"`
	MinNoticeMinutes          int       `json:"minNoticeMinutes"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// ConfigListResponse is all configuration rows of a clinic, the
// clinic-wide row first.
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// EffectiveConfigResponse is the resolved configuration plus the level it
// came from ("treatment", "clinic" or "default").
type EffectiveConfigResponse struct {
	ClinicID                  int64  `json:"clinicId"`
	TreatmentID               *int64 `json:"treatmentId,omitempty"`
	SlotDurationMinutes       int    `json:"slotDurationMinutes"`
	MaxConcurrentReservations int    `json:"maxConcurrentReservations"`
	AdvanceBookingDays        int    `json:"advanceBookingDays"`
	MinNoticeMinutes          int    `json:"minNoticeMinutes"`
	Level                     string `json:"level"`
}

// Conversion helpers

// FromDomainConfig converts a domain model into a DTO.
func FromDomainConfig(c *domain.ClinicSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                        c.ID,
		ClinicID:                  c.ClinicID,
		TreatmentID:               c.TreatmentID,
		SlotDurationMinutes:       c.SlotDurationMinutes,
		MaxConcurrentReservations: c.MaxConcurrentReservations,
		AdvanceBookingDays:        c.AdvanceBookingDays,
		MinNoticeMinutes:          c.MinNoticeMinutes,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

// FromDomainConfigList converts a list of domain models into a DTO.
func FromDomainConfigList(configs []*domain.ClinicSlotsConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if dto := FromDomainConfig(config); dto != nil {
			resp.Configs = append(resp.Configs, *dto)
		}
	}

	return resp
}
