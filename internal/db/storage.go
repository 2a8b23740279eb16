package db

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/pressid/mission-orders/internal/log"
)

// Storage defines the postgres storage
type Storage struct {
	Pgx *pgxpool.Pool
}

// NewStorage creates and returns a new Pgx storage connection
func NewStorage(connectionString string) (*Storage, error) {
	pgxConn, err := pgxpool.Connect(context.Background(), connectionString)
	if err != nil {
		return nil, err
	}
	return &Storage{
		Pgx: pgxConn,
	}, nil
}

// InTx runs fn inside a pgx transaction
func (s *Storage) InTx(ctx context.Context, fn func(conn Querier) error) error {
	return s.Pgx.BeginFunc(ctx, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// Ping checks the database connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.Pgx.Ping(ctx)
}

// Close all connections to database
func (s *Storage) Close() error {
	log.Info(context.Background(), "pgx is closing connection")
	s.Pgx.Close()
	return nil
}
