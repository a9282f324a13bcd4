package schedule

import (
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// The calculator is a pure function layer: every result is derived from
// (rule set, reservations, configuration) passed in by the caller, so two
// calls with the same inputs always agree. Times are clinic-local
// wall-clock values; timezone resolution happened at ingestion.

// SlotsForDate generates the candidate slots of one date by walking the
// date's open intervals in fixed-granularity steps, and marks each slot
// against the active reservations of that date.
func SlotsForDate(
	rules *RuleSet,
	date time.Time,
	slotDuration int,
	reservations []*domain.Reservation,
	maxConcurrent int,
) []domain.SlotAvailability {
	if slotDuration <= 0 {
		slotDuration = domain.DefaultSlotDurationMinutes
	}
	if maxConcurrent <= 0 {
		maxConcurrent = domain.DefaultMaxConcurrentReservations
	}

	slots := make([]domain.SlotAvailability, 0)

	for _, interval := range rules.OpenIntervals(date.Weekday()) {
		for start := interval.Start; ; {
			end, err := start.AddMinutes(slotDuration)
			if err != nil || end.IsAfter(interval.End) {
				break
			}

			taken := CountOverlapping(start, slotDuration, reservations)
			available := maxConcurrent - taken
			if available < 0 {
				available = 0
			}

			state := domain.SlotOpen
			if available == 0 {
				state = domain.SlotBooked
			}

			slots = append(slots, domain.SlotAvailability{
				StartTime:       start,
				DurationMinutes: slotDuration,
				State:           state,
				AvailableSpots:  available,
				TotalSpots:      maxConcurrent,
			})

			start = end
		}
	}

	return slots
}

// DayState rolls a date's slots up into the calendar-view classification.
func DayState(slots []domain.SlotAvailability) domain.DayState {
	if len(slots) == 0 {
		return domain.DayClosed
	}

	booked := 0
	for i := range slots {
		if !slots[i].IsBookable() {
			booked++
		}
	}

	switch booked {
	case 0:
		return domain.DayFullyOpen
	case len(slots):
		return domain.DayFullyBooked
	default:
		return domain.DayPartiallyBooked
	}
}

// SlotStateAt classifies a single requested slot, used to re-validate a
// booking against current data at commit time.
func SlotStateAt(
	rules *RuleSet,
	date time.Time,
	start types.TimeString,
	slotDuration int,
	reservations []*domain.Reservation,
	maxConcurrent int,
) domain.SlotState {
	if !IsValidSlotStart(rules, date, start, slotDuration) {
		return domain.SlotOutsideHours
	}
	if CountOverlapping(start, slotDuration, reservations) >= maxConcurrent {
		return domain.SlotBooked
	}
	return domain.SlotOpen
}

// IsValidSlotStart reports whether start is one of the candidate slot
// start times of the date: aligned to the granularity walk and fitting
// entirely inside an open interval. A time inside open hours but off the
// grid is not a valid slot.
func IsValidSlotStart(rules *RuleSet, date time.Time, start types.TimeString, slotDuration int) bool {
	if slotDuration <= 0 {
		slotDuration = domain.DefaultSlotDurationMinutes
	}

	for _, interval := range rules.OpenIntervals(date.Weekday()) {
		for cursor := interval.Start; ; {
			end, err := cursor.AddMinutes(slotDuration)
			if err != nil || end.IsAfter(interval.End) {
				break
			}
			if cursor == start {
				return true
			}
			cursor = end
		}
	}
	return false
}

// CountOverlapping counts active reservations whose span truly intersects
// the [start, start+duration) slot. Touching boundaries are not overlap:
// a reservation ending exactly when the slot starts does not occupy it.
func CountOverlapping(start types.TimeString, slotDuration int, reservations []*domain.Reservation) int {
	slotEnd, err := start.AddMinutes(slotDuration)
	if err != nil {
		return 0
	}

	slot := domain.TimeInterval{Start: start, End: slotEnd}

	count := 0
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}

		resEnd, err := r.StartTime.AddMinutes(r.DurationMinutes)
		if err != nil {
			continue
		}

		if slot.Overlaps(domain.TimeInterval{Start: r.StartTime, End: resEnd}) {
			count++
		}
	}

	return count
}
