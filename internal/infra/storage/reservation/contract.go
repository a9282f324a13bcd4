package reservation

import (
	"context"
	"database/sql"

	"github.com/10xBlitz/chia-sub002/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over a
// bare *sql.DB, the metrics wrapper, and open transactions alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner is satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
