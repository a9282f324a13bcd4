package schedule

import (
	"sort"
	"time"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// Logger is the logging surface the rule set needs. Malformed working-hour
// rows are configuration errors on a read path: they are logged and
// skipped, never fatal.
type Logger interface {
	Warn(format string, v ...interface{})
}

// RuleSet is a clinic's weekly open/closed pattern normalized into
// queryable per-weekday intervals. Lunch-break rows are subtracted from
// the open spans of their weekday at construction time, so callers only
// ever see the effective open intervals.
type RuleSet struct {
	clinicID int64
	open     [7][]domain.TimeInterval // indexed by time.Weekday
}

// NewRuleSet normalizes raw working-hour rows into a rule set.
//
// Rules applied, in order:
//   - entries failing validation (opens_at >= closes_at, bad format) are
//     skipped and logged;
//   - overlapping or touching open entries of the same weekday are
//     unioned, not rejected;
//   - a lunch entry is subtracted from the open span that covers it; a
//     lunch entry falling outside every open span of its weekday is a
//     configuration error and is ignored.
func NewRuleSet(clinicID int64, entries []domain.WorkingHourEntry, log Logger) *RuleSet {
	rs := &RuleSet{clinicID: clinicID}

	var lunches [7][]domain.TimeInterval
	for i := range entries {
		e := entries[i]
		if err := e.Validate(); err != nil {
			if log != nil {
				log.Warn("schedule: clinic=%d skipping invalid working-hour entry id=%d: %v", clinicID, e.ID, err)
			}
			continue
		}
		if e.IsLunchBreak {
			lunches[e.DayOfWeek] = append(lunches[e.DayOfWeek], e.Interval())
		} else {
			rs.open[e.DayOfWeek] = append(rs.open[e.DayOfWeek], e.Interval())
		}
	}

	for day := range rs.open {
		rs.open[day] = mergeIntervals(rs.open[day])
		for _, lunch := range lunches[day] {
			subtracted, ok := subtractInterval(rs.open[day], lunch)
			if !ok {
				if log != nil {
					log.Warn("schedule: clinic=%d lunch break %s-%s on %s falls outside open hours, ignoring",
						clinicID, lunch.Start, lunch.End, time.Weekday(day))
				}
				continue
			}
			rs.open[day] = subtracted
		}
	}

	return rs
}

// OpenIntervals returns the effective open spans for a weekday, ordered by
// start time, with lunch breaks already subtracted. A weekday with no
// entries yields an empty slice: fully closed.
func (rs *RuleSet) OpenIntervals(day time.Weekday) []domain.TimeInterval {
	return rs.open[day]
}

// IsOpenAt reports whether the clinic is nominally open at the given
// date's weekday and wall-clock time.
func (rs *RuleSet) IsOpenAt(date time.Time, t types.TimeString) bool {
	for _, interval := range rs.open[date.Weekday()] {
		if interval.Contains(t) {
			return true
		}
	}
	return false
}

// HasAnyHours reports whether any weekday has at least one open interval.
func (rs *RuleSet) HasAnyHours() bool {
	for day := range rs.open {
		if len(rs.open[day]) > 0 {
			return true
		}
	}
	return false
}

// mergeIntervals unions overlapping or touching intervals into an ordered,
// disjoint set.
func mergeIntervals(intervals []domain.TimeInterval) []domain.TimeInterval {
	if len(intervals) < 2 {
		return intervals
	}

	sorted := make([]domain.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	merged := []domain.TimeInterval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !last.End.IsBefore(next.Start) {
			if last.End.IsBefore(next.End) {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// subtractInterval removes exclusion from the interval set. Returns false
// when no interval covers the exclusion, which marks a misconfigured
// lunch break.
func subtractInterval(intervals []domain.TimeInterval, exclusion domain.TimeInterval) ([]domain.TimeInterval, bool) {
	if exclusion.IsEmpty() {
		return intervals, false
	}

	for i, interval := range intervals {
		if !interval.Covers(exclusion) {
			continue
		}

		result := make([]domain.TimeInterval, 0, len(intervals)+1)
		result = append(result, intervals[:i]...)

		before := domain.TimeInterval{Start: interval.Start, End: exclusion.Start}
		after := domain.TimeInterval{Start: exclusion.End, End: interval.End}
		if !before.IsEmpty() {
			result = append(result, before)
		}
		if !after.IsEmpty() {
			result = append(result, after)
		}

		result = append(result, intervals[i+1:]...)
		return result, true
	}

	return intervals, false
}
