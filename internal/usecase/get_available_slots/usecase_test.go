package get_available_slots

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
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// Test doubles

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
	clinicErr    error
	treatmentErr error
}

func (f *fakeClinicClient) GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error) {
	if f.clinicErr != nil {
		return nil, f.clinicErr
	}
	return &clinicservice.Clinic{ID: clinicID, OwnerID: 100, Name: "Bright Smile Dental"}, nil
}

func (f *fakeClinicClient) GetTreatment(ctx context.Context, clinicID, treatmentID int64) (*clinicservice.Treatment, error) {
	if f.treatmentErr != nil {
		return nil, f.treatmentErr
	}
	return &clinicservice.Treatment{ID: treatmentID, ClinicID: clinicID, Name: "Scaling"}, nil
}

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Fixtures: Monday 09:00-18:00, lunch 12:00-13:00

func mondayEntries() []domain.WorkingHourEntry {
	return []domain.WorkingHourEntry{
		{ClinicID: 1, DayOfWeek: time.Monday, OpensAt: "09:00", ClosesAt: "18:00"},
		{ClinicID: 1, DayOfWeek: time.Monday, OpensAt: "12:00", ClosesAt: "13:00", IsLunchBreak: true},
	}
}

func newTestUseCase(
	reservations *fakeReservationRepo,
	hours *fakeWorkingHoursRepo,
	configs *fakeConfigRepo,
	client *fakeClinicClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(reservations, hours, configs, client, nopLogger{})
	uc.timeProvider = fakeClock{now: now}
	return uc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestExecute_FullDayOfSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		at(2026, 9, 1, 10, 0), // Tuesday before the queried Monday
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7), // Monday
	})
	require.NoError(t, err)

	// Defaults: 30-minute slots. 6 before lunch, 10 after.
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[6].StartTime)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotOpen, s.State)
	}
}

func TestExecute_NoticeWindowHidesSameDaySlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
			ClinicID:                  1,
			SlotDurationMinutes:       30,
			MaxConcurrentReservations: 1,
			MinNoticeMinutes:          120,
		}},
		&fakeClinicClient{},
		at(2026, 9, 7, 15, 30), // same Monday, 15:30
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	require.NoError(t, err)

	// 15:30 + 120min notice = 17:30, only the last slot survives
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[0].StartTime)
}

func TestExecute_NoticeWindowCrossingMidnight(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
			ClinicID:                  1,
			SlotDurationMinutes:       30,
			MaxConcurrentReservations: 1,
			MinNoticeMinutes:          600,
		}},
		&fakeClinicClient{},
		at(2026, 9, 7, 17, 0), // 17:00 + 10h crosses midnight
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoticeWindowReachesIntoNextDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
			ClinicID:                  1,
			SlotDurationMinutes:       30,
			MaxConcurrentReservations: 1,
			MinNoticeMinutes:          720,
		}},
		&fakeClinicClient{},
		at(2026, 9, 6, 23, 0), // Sunday 23:00, 12h notice reaches Monday 11:00
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	require.NoError(t, err)

	// Monday slots before 11:00 are inside the notice window
	require.Len(t, resp.Slots, 12)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
}

func TestExecute_BookedSlotReported(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{{
			ClinicID:        1,
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusActive,
		}}},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		at(2026, 9, 1, 10, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	require.NoError(t, err)

	var booked int
	for _, s := range resp.Slots {
		if s.State == domain.SlotBooked {
			booked++
			assert.Equal(t, types.TimeString("14:00"), s.StartTime)
			assert.Equal(t, 0, s.AvailableSpots)
		}
	}
	assert.Equal(t, 1, booked)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		at(2026, 9, 1, 10, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 6), // Sunday
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoWorkingHoursMeansClosed(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{err: workinghours.ErrNoWorkingHours},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		at(2026, 9, 1, 10, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClinicNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{clinicErr: clinicservice.ErrClinicNotFound},
		at(2026, 9, 1, 10, 0),
	)

	_, err := uc.Execute(context.Background(), &Request{
		ClinicID:    1,
		TreatmentID: 5,
		Date:        date(2026, 9, 7),
	})
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_DateValidation(t *testing.T) {
	now := at(2026, 9, 7, 10, 0)

	tests := []struct {
		name    string
		date    time.Time
		horizon int
		wantErr error
	}{
		{name: "past date", date: date(2026, 9, 6), wantErr: ErrInvalidDate},
		{name: "beyond horizon", date: date(2026, 9, 20), horizon: 7, wantErr: ErrDateTooFarInFuture},
		{name: "at horizon edge", date: date(2026, 9, 14), horizon: 7},
		{name: "unlimited horizon", date: date(2027, 9, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(
				&fakeReservationRepo{},
				&fakeWorkingHoursRepo{entries: mondayEntries()},
				&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
					ClinicID:                  1,
					SlotDurationMinutes:       30,
					MaxConcurrentReservations: 1,
					AdvanceBookingDays:        tt.horizon,
				}},
				&fakeClinicClient{},
				now,
			)

			_, err := uc.Execute(context.Background(), &Request{
				ClinicID:    1,
				TreatmentID: 5,
				Date:        tt.date,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
