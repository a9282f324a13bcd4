package domain

import "time"

// ClinicSlotsConfig represents the scheduling configuration of a clinic.
// Supports a two-level hierarchy:
// 1. Treatment-specific (clinic_id, treatment_id)
// 2. Clinic-wide (clinic_id, NULL)
type ClinicSlotsConfig struct {
	ID                        int64
	ClinicID                  int64
	TreatmentID               *int64 // NULL = config for all treatments
	SlotDurationMinutes       int
	MaxConcurrentReservations int
	AdvanceBookingDays        int // 0 = unlimited
	MinNoticeMinutes          int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultSlotsConfig returns the platform defaults used when a clinic has
// no configuration row.
func DefaultSlotsConfig() *ClinicSlotsConfig {
	return &ClinicSlotsConfig{
		SlotDurationMinutes:       DefaultSlotDurationMinutes,
		MaxConcurrentReservations: DefaultMaxConcurrentReservations,
		AdvanceBookingDays:        DefaultAdvanceBookingDays,
		MinNoticeMinutes:          DefaultMinNoticeMinutes,
	}
}

// IsClinicWide returns true if this configuration applies to all treatments.
func (c *ClinicSlotsConfig) IsClinicWide() bool {
	return c.TreatmentID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in
// advance reservations can be made.
func (c *ClinicSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
