package domain

// Default scheduling configuration, applied when a clinic has no config row
const (
	DefaultSlotDurationMinutes       = 30
	DefaultMaxConcurrentReservations = 1
	DefaultAdvanceBookingDays        = 0 // 0 = unlimited
	DefaultMinNoticeMinutes          = 120
)

// Validation bounds for clinic scheduling configuration
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	MinConcurrentReservations = 1
	MaxConcurrentReservations = 50

	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365

	MinNoticeMinutesLimit = 0
	MaxNoticeMinutesLimit = 10080 // 1 week

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	// MaxAvailabilityRangeDays bounds a single day-availability query;
	// the calendar UI requests at most two months at a time.
	MaxAvailabilityRangeDays = 92
)

// DateFormat is the YYYY-MM-DD layout used on every API surface.
const DateFormat = "2006-01-02"
