package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/reservation"
	"github.com/10xBlitz/chia-sub002/internal/infra/storage/workinghours"
	"github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	"github.com/10xBlitz/chia-sub002/pkg/ptr"
	"github.com/10xBlitz/chia-sub002/pkg/types"
)

// Test doubles

type fakeReservationRepo struct {
	existing  []*domain.Reservation
	getErr    error
	createErr error

	created *domain.Reservation
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = res
	stored := *res
	stored.ID = 42
	stored.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (f *fakeReservationRepo) GetByClinicWithFilter(ctx context.Context, filter domain.ClinicReservationsFilter) ([]*domain.Reservation, error) {
	return f.existing, f.getErr
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
	return &clinicservice.Treatment{
		ID:       treatmentID,
		ClinicID: clinicID,
		Name:     "Scaling",
		Price:    ptr.Ptr(80000.0),
	}, nil
}

// fakeTxManager runs the callback directly; isolation is the real
// manager's concern, not the usecase's.
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	uc := NewUseCase(reservations, hours, configs, client, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fakeClock{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		PatientID:   7,
		ClinicID:    1,
		TreatmentID: 5,
		Date:        time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // Monday
		StartTime:   "14:00",
	}
}

func before() time.Time {
	return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(
		repo,
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.PatientID)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusActive), resp.Status)

	// Treatment snapshot denormalized onto the reservation
	assert.Equal(t, "Scaling", resp.TreatmentName)
	assert.Equal(t, 80000.0, resp.TreatmentPrice)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusActive, repo.created.Status)
	assert.Equal(t, 30, repo.created.DurationMinutes)
}

func TestExecute_TreatmentConfigDrivesDuration(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(
		repo,
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
			ClinicID:                  1,
			SlotDurationMinutes:       60,
			MaxConcurrentReservations: 1,
		}},
		&fakeClinicClient{},
		before(),
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{existing: []*domain.Reservation{{
			ClinicID:        1,
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusActive,
		}}},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SecondChairAcceptsOverlap(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{existing: []*domain.Reservation{{
			ClinicID:        1,
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusActive,
		}}},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
			ClinicID:                  1,
			SlotDurationMinutes:       30,
			MaxConcurrentReservations: 2,
		}},
		&fakeClinicClient{},
		before(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{existing: []*domain.Reservation{{
			ClinicID:        1,
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelled,
		}}},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_RaceLostOnUniqueIndex(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{createErr: reservation.ErrSlotTaken},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	req := validRequest()
	req.Date = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC) // Sunday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClinicClosed)
}

func TestExecute_NoWorkingHoursMeansClosed(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{err: workinghours.ErrNoWorkingHours},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClinicClosed)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "off the slot grid", start: "14:10"},
		{name: "inside lunch break", start: "12:00"},
		{name: "before opening", start: "08:30"},
		{name: "spills past closing", start: "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_TooLateToBook(t *testing.T) {
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
		time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC), // booking same Monday at 13:00
	)

	// 14:00 is only an hour away, the notice window requires two
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 16:00 satisfies the window
	req := validRequest()
	req.StartTime = "16:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_NoticeWindowCrossesMidnight(t *testing.T) {
	earlyMonday := []domain.WorkingHourEntry{
		{ClinicID: 1, DayOfWeek: time.Monday, OpensAt: "00:00", ClosesAt: "02:00"},
	}
	newUC := func() *UseCase {
		return newTestUseCase(
			&fakeReservationRepo{},
			&fakeWorkingHoursRepo{entries: earlyMonday},
			&fakeConfigRepo{config: &domain.ClinicSlotsConfig{
				ClinicID:                  1,
				SlotDurationMinutes:       30,
				MaxConcurrentReservations: 1,
				MinNoticeMinutes:          120,
			}},
			&fakeClinicClient{},
			time.Date(2026, 9, 6, 23, 30, 0, 0, time.UTC), // Sunday 23:30
		)
	}

	// Monday 00:30 is only an hour away even though the date differs
	req := validRequest()
	req.StartTime = "00:30"
	_, err := newUC().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Monday 01:30 sits exactly on the two-hour boundary
	req = validRequest()
	req.StartTime = "01:30"
	_, err = newUC().Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_DateValidation(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		horizon int
		wantErr error
	}{
		{name: "past date", date: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), wantErr: ErrInvalidDate},
		{name: "beyond horizon", date: time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC), horizon: 7, wantErr: ErrDateTooFarInFuture},
		{name: "at horizon edge", date: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), horizon: 7},
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

			req := validRequest()
			req.Date = tt.date

			_, err := uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_CatalogErrors(t *testing.T) {
	t.Run("clinic not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeWorkingHoursRepo{entries: mondayEntries()},
			&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
			&fakeClinicClient{clinicErr: clinicservice.ErrClinicNotFound},
			before(),
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrClinicNotFound)
	})

	t.Run("treatment not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeWorkingHoursRepo{entries: mondayEntries()},
			&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
			&fakeClinicClient{treatmentErr: clinicservice.ErrTreatmentNotFound},
			before(),
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrTreatmentNotFound)
	})
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeWorkingHoursRepo{entries: mondayEntries()},
		&fakeConfigRepo{err: clinicconfig.ErrConfigNotFound},
		&fakeClinicClient{},
		before(),
	)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero patient", mutate: func(r *Request) { r.PatientID = 0 }},
		{name: "zero clinic", mutate: func(r *Request) { r.ClinicID = 0 }},
		{name: "zero treatment", mutate: func(r *Request) { r.TreatmentID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "9am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
