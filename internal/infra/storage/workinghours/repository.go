package workinghours

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/10xBlitz/chia-sub002/internal/domain"
	"github.com/10xBlitz/chia-sub002/pkg/dbmetrics"
	"github.com/10xBlitz/chia-sub002/pkg/psqlbuilder"
)

// Repository reads clinic working-hour rows. The rows are written by the
// admin back-office; the scheduling service never mutates them.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a working-hours repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByClinicID fetches all working-hour entries of a clinic, lunch-break
// rows included, ordered for deterministic rule-set construction.
// Returns ErrNoWorkingHours when the clinic has no entries at all.
func (r *Repository) GetByClinicID(ctx context.Context, clinicID int64) ([]domain.WorkingHourEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"clinic_id",
		"day_of_week",
		"opens_at",
		"closes_at",
		"is_lunch_break",
	).
		From("working_hours").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("day_of_week ASC, is_lunch_break ASC, opens_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WorkingHourEntry, 0)
	for rows.Next() {
		var entry domain.WorkingHourEntry
		var dayOfWeek int

		err := rows.Scan(
			&entry.ID,
			&entry.ClinicID,
			&dayOfWeek,
			&entry.OpensAt,
			&entry.ClosesAt,
			&entry.IsLunchBreak,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByClinicID - scan row: %v", ErrScanRow, err)
		}

		// 0 = Sunday, matching both Postgres DOW and time.Weekday.
		// Out-of-range values survive the scan and are rejected by the
		// rule set's entry validation.
		entry.DayOfWeek = time.Weekday(dayOfWeek)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByClinicID - rows error: %v", ErrScanRow, err)
	}

	if len(entries) == 0 {
		return nil, ErrNoWorkingHours
	}

	return entries, nil
}
