package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xBlitz/chia-sub002/internal/domain"
)

// Monday 09:00-18:00 with a 12:00-13:00 lunch break, the reference
// weekly pattern used across these tests.
func mondayRules(t *testing.T) *RuleSet {
	t.Helper()
	return NewRuleSet(1, []domain.WorkingHourEntry{
		entry(time.Monday, "09:00", "18:00", false),
		entry(time.Monday, "12:00", "13:00", true),
	}, nopLogger{})
}

func monday() time.Time {
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

func activeReservation(start string, duration int) *domain.Reservation {
	return &domain.Reservation{
		ClinicID:        1,
		StartTime:       ts(start),
		DurationMinutes: duration,
		Status:          domain.StatusActive,
	}
}

func TestSlotsForDate_GeneratesGrid(t *testing.T) {
	slots := SlotsForDate(mondayRules(t), monday(), 30, nil, 1)

	// 09:00-12:00 yields 6 slots, 13:00-18:00 yields 10
	require.Len(t, slots, 16)

	assert.Equal(t, ts("09:00"), slots[0].StartTime)
	assert.Equal(t, ts("11:30"), slots[5].StartTime)
	assert.Equal(t, ts("13:00"), slots[6].StartTime)
	assert.Equal(t, ts("17:30"), slots[15].StartTime)

	for _, s := range slots {
		assert.Equal(t, domain.SlotOpen, s.State)
		assert.Equal(t, 1, s.AvailableSpots)
		assert.Equal(t, 1, s.TotalSpots)
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestSlotsForDate_MarksBookedSlots(t *testing.T) {
	reservations := []*domain.Reservation{activeReservation("14:00", 30)}

	slots := SlotsForDate(mondayRules(t), monday(), 30, reservations, 1)
	require.Len(t, slots, 16)

	for _, s := range slots {
		if s.StartTime == ts("14:00") {
			assert.Equal(t, domain.SlotBooked, s.State)
			assert.Equal(t, 0, s.AvailableSpots)
		} else {
			assert.Equal(t, domain.SlotOpen, s.State, "slot %s", s.StartTime)
		}
	}
}

func TestSlotsForDate_CancelledReservationFreesSlot(t *testing.T) {
	cancelled := activeReservation("14:00", 30)
	cancelled.Status = domain.StatusCancelled

	slots := SlotsForDate(mondayRules(t), monday(), 30, []*domain.Reservation{cancelled}, 1)
	for _, s := range slots {
		assert.Equal(t, domain.SlotOpen, s.State)
	}
}

func TestSlotsForDate_MultipleSpots(t *testing.T) {
	reservations := []*domain.Reservation{activeReservation("09:00", 30)}

	slots := SlotsForDate(mondayRules(t), monday(), 30, reservations, 2)
	require.NotEmpty(t, slots)

	first := slots[0]
	assert.Equal(t, ts("09:00"), first.StartTime)
	assert.Equal(t, domain.SlotOpen, first.State)
	assert.Equal(t, 1, first.AvailableSpots)
	assert.Equal(t, 2, first.TotalSpots)
}

func TestSlotsForDate_ClosedWeekday(t *testing.T) {
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	slots := SlotsForDate(mondayRules(t), sunday, 30, nil, 1)
	assert.Empty(t, slots)
}

func TestSlotsForDate_PartialSlotAtClosingDropped(t *testing.T) {
	// 09:00-10:45 with 30-minute slots: 09:00, 09:30, 10:00 fit; a slot
	// at 10:30 would spill past closing and must not appear
	rs := NewRuleSet(1, []domain.WorkingHourEntry{
		entry(time.Monday, "09:00", "10:45", false),
	}, nopLogger{})

	slots := SlotsForDate(rs, monday(), 30, nil, 1)
	require.Len(t, slots, 3)
	assert.Equal(t, ts("10:00"), slots[2].StartTime)
}

func TestDayState(t *testing.T) {
	open := domain.SlotAvailability{State: domain.SlotOpen, AvailableSpots: 1, TotalSpots: 1}
	booked := domain.SlotAvailability{State: domain.SlotBooked, TotalSpots: 1}

	tests := []struct {
		name  string
		slots []domain.SlotAvailability
		want  domain.DayState
	}{
		{name: "no slots means closed", slots: nil, want: domain.DayClosed},
		{name: "all open", slots: []domain.SlotAvailability{open, open}, want: domain.DayFullyOpen},
		{name: "some booked", slots: []domain.SlotAvailability{open, booked}, want: domain.DayPartiallyBooked},
		{name: "all booked", slots: []domain.SlotAvailability{booked, booked}, want: domain.DayFullyBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayState(tt.slots))
		})
	}
}

func TestIsValidSlotStart(t *testing.T) {
	rules := mondayRules(t)

	tests := []struct {
		name  string
		start string
		want  bool
	}{
		{name: "grid aligned opening slot", start: "09:00", want: true},
		{name: "grid aligned afternoon slot", start: "13:30", want: true},
		{name: "off grid inside open hours", start: "09:15", want: false},
		{name: "inside lunch break", start: "12:00", want: false},
		{name: "before opening", start: "08:30", want: false},
		{name: "last fitting slot", start: "17:30", want: true},
		{name: "would spill past closing", start: "17:45", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSlotStart(rules, monday(), ts(tt.start), 30))
		})
	}
}

func TestSlotStateAt(t *testing.T) {
	rules := mondayRules(t)
	reservations := []*domain.Reservation{activeReservation("14:00", 30)}

	assert.Equal(t, domain.SlotOpen, SlotStateAt(rules, monday(), ts("09:00"), 30, reservations, 1))
	assert.Equal(t, domain.SlotBooked, SlotStateAt(rules, monday(), ts("14:00"), 30, reservations, 1))
	assert.Equal(t, domain.SlotOutsideHours, SlotStateAt(rules, monday(), ts("12:00"), 30, reservations, 1))
}

func TestCountOverlapping(t *testing.T) {
	tests := []struct {
		name         string
		reservations []*domain.Reservation
		start        string
		duration     int
		want         int
	}{
		{
			name:         "exact match",
			reservations: []*domain.Reservation{activeReservation("10:00", 30)},
			start:        "10:00", duration: 30, want: 1,
		},
		{
			name:         "touching boundary before is not overlap",
			reservations: []*domain.Reservation{activeReservation("09:30", 30)},
			start:        "10:00", duration: 30, want: 0,
		},
		{
			name:         "touching boundary after is not overlap",
			reservations: []*domain.Reservation{activeReservation("10:30", 30)},
			start:        "10:00", duration: 30, want: 0,
		},
		{
			name:         "long reservation covering the slot",
			reservations: []*domain.Reservation{activeReservation("09:00", 120)},
			start:        "10:00", duration: 30, want: 1,
		},
		{
			name: "multiple overlapping",
			reservations: []*domain.Reservation{
				activeReservation("10:00", 30),
				activeReservation("10:15", 30),
			},
			start: "10:00", duration: 30, want: 2,
		},
		{
			name: "cancelled ignored",
			reservations: func() []*domain.Reservation {
				r := activeReservation("10:00", 30)
				r.Status = domain.StatusCancelled
				return []*domain.Reservation{r}
			}(),
			start: "10:00", duration: 30, want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountOverlapping(ts(tt.start), tt.duration, tt.reservations))
		})
	}
}
