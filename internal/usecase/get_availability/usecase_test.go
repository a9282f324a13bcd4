package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/workinghours"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByClinicWithFilter(ctx context.Context, filter domain.ClinicReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, f.err
}

type fakeWorkingHoursRepo struct {
	entries []domain.WorkingHourEntry
	err     error
}

func (f *fakeWorkingHoursRepo) GetByClinicID(ctx context.Context, clinicID int64) ([]domain.WorkingHourEntry, error) {
	return f.entries, f.err
}

type fakeConfigRepo struct {
	config *domain.ClinicSlotsConfig
	err    error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error) {
	return f.config, f.err
}

type fakeClinicClient struct {
	err error
}

func (f *fakeClinicClient) GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &clinicservice.Clinic{ID: clinicID, OwnerID: 100, Name: "Bright Smile Dental"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Short week: only Monday 09:00-11:00 is open, two 60-minute slots.
func shortMondayEntries() []domain.WorkingHourEntry {
	return []domain.WorkingHourEntry{
		{ClinicID: 1, DayOfWeek: time.Monday, OpensAt: "09:00", ClosesAt: "11:00"},
	}
}

func hourSlotConfig() *domain.ClinicSlotsConfig {
	return &domain.ClinicSlotsConfig{
		ClinicID:                  1,
		SlotDurationMinutes:       60,
		MaxConcurrentReservations: 1,
	}
}

func TestExecute_RangeRollUp(t *testing.T) {
	// Monday 2026-09-07 has one of its two slots booked; the rest of the
	// week is closed
	uc := NewUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{{
			ClinicID:        1,
			ReservationDate: date(2026, 9, 7),
			StartTime:       "09:00",
			DurationMinutes: 60,
			Status:          domain.StatusActive,
		}}},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{config: hourSlotConfig()},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 6), // Sunday
		To:       date(2026, 9, 8), // Tuesday
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.Equal(t, date(2026, 9, 6), resp.Days[0].Date)
	assert.Equal(t, domain.DayClosed, resp.Days[0].State)
	assert.Equal(t, domain.DayPartiallyBooked, resp.Days[1].State)
	assert.Equal(t, domain.DayClosed, resp.Days[2].State)
}

func TestExecute_FullyBookedDay(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			{ClinicID: 1, ReservationDate: date(2026, 9, 7), StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusActive},
			{ClinicID: 1, ReservationDate: date(2026, 9, 7), StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusActive},
		}},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{config: hourSlotConfig()},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, domain.DayFullyBooked, resp.Days[0].State)
}

func TestExecute_FullyOpenDay(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{config: hourSlotConfig()},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, domain.DayFullyOpen, resp.Days[0].State)
}

func TestExecute_CancelledReservationsDoNotBlock(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			{ClinicID: 1, ReservationDate: date(2026, 9, 7), StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusCancelled},
		}},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{config: hourSlotConfig()},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 7),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DayFullyOpen, resp.Days[0].State)
}

func TestExecute_NoWorkingHoursAllDaysClosed(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{err: workinghours.ErrNoWorkingHours},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 9),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)
	for _, day := range resp.Days {
		assert.Equal(t, domain.DayClosed, day.State)
	}
}

func TestExecute_OnlyInvalidWorkingHoursAllDaysClosed(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: []domain.WorkingHourEntry{
			{ClinicID: 1, DayOfWeek: time.Monday, OpensAt: "18:00", ClosesAt: "09:00"}, // inverted span
		}},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 8),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	for _, day := range resp.Days {
		assert.Equal(t, domain.DayClosed, day.State)
	}
}

func TestExecute_ClinicNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{err: clinicservice.ErrClinicNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ClinicID: 1,
		From:     date(2026, 9, 7),
		To:       date(2026, 9, 8),
	})
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_RangeValidation(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: shortMondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		nopLogger{},
	)

	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantErr error
	}{
		{name: "inverted range", from: date(2026, 9, 8), to: date(2026, 9, 7), wantErr: ErrInvalidRange},
		{name: "oversized range", from: date(2026, 1, 1), to: date(2026, 12, 31), wantErr: ErrInvalidRange},
		{name: "single day", from: date(2026, 9, 7), to: date(2026, 9, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{ClinicID: 1, From: tt.from, To: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
