package workinghours

import "errors"

var (
	// ErrNoWorkingHours is returned when a clinic has no working-hour rows.
	// Callers treat this as "always closed", not as a user-facing failure.
	ErrNoWorkingHours = errors.New("workinghours.repository: clinic has no working hours")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
