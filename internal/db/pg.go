package db

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Querier represents the set of persistence methods.
// Both *pgxpool.Pool and pgx.Tx satisfy it, so repositories work inside or outside a transaction.
type Querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginFunc(ctx context.Context, f func(pgx.Tx) error) (err error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	QueryFunc(ctx context.Context, sql string, args []interface{}, scans []interface{}, f func(pgx.QueryFuncRow) error) (pgconn.CommandTag, error)
}

// Transactor runs a function inside a database transaction.
// The transaction is committed if fn returns nil and rolled back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(conn Querier) error) error
}
