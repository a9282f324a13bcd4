package domain

import (
	"fmt"
	"time"

	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// WorkingHourEntry is one declared span of a clinic's weekly pattern.
// Lunch breaks arrive from the back-office as separate rows flagged
// IsLunchBreak; the rule set subtracts them from the open spans of the
// same weekday instead of treating them as a day of their own.
type WorkingHourEntry struct {
	ID           int64
	ClinicID     int64
	DayOfWeek    time.Weekday
	OpensAt      types.TimeString
	ClosesAt     types.TimeString
	IsLunchBreak bool
}

// Validate checks that the entry describes a well-formed span.
func (e *WorkingHourEntry) Validate() error {
	if err := e.OpensAt.Validate(); err != nil {
		return fmt.Errorf("opens_at: %w", err)
	}
	if err := e.ClosesAt.Validate(); err != nil {
		return fmt.Errorf("closes_at: %w", err)
	}
	if !e.OpensAt.IsBefore(e.ClosesAt) {
		return fmt.Errorf("opens_at %s must be before closes_at %s", e.OpensAt, e.ClosesAt)
	}
	if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday {
		return fmt.Errorf("invalid day of week %d", e.DayOfWeek)
	}
	return nil
}

// Interval returns the entry's time span.
func (e *WorkingHourEntry) Interval() TimeInterval {
	return TimeInterval{Start: e.OpensAt, End: e.ClosesAt}
}

// TimeInterval is a half-open [Start, End) span within a single day.
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether t falls within the interval.
func (i TimeInterval) Contains(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// Overlaps reports whether the two intervals share any instant.
// Touching boundaries do not count as overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Covers reports whether other lies entirely within i.
func (i TimeInterval) Covers(other TimeInterval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}

// IsEmpty reports whether the interval spans no time.
func (i TimeInterval) IsEmpty() bool {
	return !i.Start.IsBefore(i.End)
}
