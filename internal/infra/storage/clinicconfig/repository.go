package clinicconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/dbmetrics"
	"github.com/10xBlitz/chia-sub002/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"clinic_id",
	"treatment_id",
	"slot_duration_minutes",
	"max_concurrent_reservations",
	"advance_booking_days",
	"min_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository stores per-clinic scheduling configuration.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a clinic config repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new configuration row.
func (r *Repository) Create(ctx context.Context, config *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clinic_slots_config").
		Columns(
			"clinic_id",
			"treatment_id",
			"slot_duration_minutes",
			"max_concurrent_reservations",
			"advance_booking_days",
			"min_notice_minutes",
		).
		Values(
			config.ClinicID,
			config.TreatmentID,
			config.SlotDurationMinutes,
			config.MaxConcurrentReservations,
			config.AdvanceBookingDays,
			config.MinNoticeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByClinicAndTreatment fetches the configuration row matching exactly
// the given clinic and treatment (nil treatment = the clinic-wide row).
func (r *Repository) GetByClinicAndTreatment(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("clinic_slots_config").
		Where(squirrel.Eq{"clinic_id": clinicID})

	if treatmentID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"treatment_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"treatment_id": *treatmentID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicAndTreatment - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicAndTreatment - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy resolves the effective configuration:
// 1. Treatment-specific row (clinic_id, treatment_id)
// 2. Clinic-wide row (clinic_id, NULL)
// Returns ErrConfigNotFound when neither level has a row; callers fall
// back to the platform defaults.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, clinicID int64, treatmentID *int64) (*domain.ClinicSlotsConfig, error) {
	if treatmentID != nil {
		config, err := r.GetByClinicAndTreatment(ctx, clinicID, treatmentID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - treatment level: %v", ErrExecQuery, err)
		}
	}

	config, err := r.GetByClinicAndTreatment(ctx, clinicID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - clinic level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByClinic fetches every configuration row of a clinic, the
// clinic-wide row first.
func (r *Repository) GetAllByClinic(ctx context.Context, clinicID int64) ([]*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("clinic_slots_config").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("treatment_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByClinic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByClinic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ClinicSlotsConfig, 0)
	for rows.Next() {
		config, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByClinic - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByClinic - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update rewrites the tunable fields of an existing configuration row.
func (r *Repository) Update(ctx context.Context, id int64, config *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clinic_slots_config").
		Set("slot_duration_minutes", config.SlotDurationMinutes).
		Set("max_concurrent_reservations", config.MaxConcurrentReservations).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("min_notice_minutes", config.MinNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanConfig(row rowScanner) (*domain.ClinicSlotsConfig, error) {
	var config domain.ClinicSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.ClinicID,
		&config.TreatmentID,
		&config.SlotDurationMinutes,
		&config.MaxConcurrentReservations,
		&config.AdvanceBookingDays,
		&config.MinNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
