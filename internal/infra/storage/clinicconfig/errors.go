package clinicconfig

import "errors"

var (
	// ErrConfigNotFound is returned when no configuration row matches
	ErrConfigNotFound = errors.New("clinicconfig.repository: config not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("clinicconfig.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("clinicconfig.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("clinicconfig.repository: failed to scan row")
)
