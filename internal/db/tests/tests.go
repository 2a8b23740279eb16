package tests

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/db/schema"
)

const (
	defaultTimeOut = 40
	// PostgresURLEnv names the env var holding the server used by database tests
	PostgresURLEnv = "POSTGRES_TEST_DATABASE"
)

// LookupPostgresURL returns the test database server url or an empty string.
func LookupPostgresURL() string {
	con, ok := os.LookupEnv(PostgresURLEnv)
	if !ok {
		return ""
	}
	return con
}

// NewTestStorage creates a fresh database, runs the migrations on it and returns a storage connected to it
func NewTestStorage(cfg *config.Configuration) (*db.Storage, func(), error) {
	noopTeardown := func() {}
	if cfg.Database.URL == "" {
		return nil, noopTeardown, errors.New("testdb: no connection string")
	}

	tempDBName := "mission_orders_test_" + time.Now().UTC().Format("20060102150405.999999999")
	tempURL, err := url.Parse(cfg.Database.URL + "/" + tempDBName + "?sslmode=disable")
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("connection string is invalid: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeOut*time.Second)
	defer cancel()

	storage, err := db.NewStorage(cfg.Database.URL)
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("can't connect to database: %v", err)
	}

	_, err = storage.Pgx.Exec(ctx, fmt.Sprintf(`create database "%s";`, tempDBName))
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("failed to create database (%s): %v", tempDBName, err)
	}
	_ = storage.Close()

	if err := schema.Migrate(tempURL.String()); err != nil {
		return nil, noopTeardown, fmt.Errorf("can't migrate database %v", err)
	}

	storage, err = db.NewStorage(tempURL.String())
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("can't connect to database: %v", err)
	}

	teardown := func() {
		_ = storage.Close()
	}

	return storage, teardown, nil
}

// NoTx is a db.Transactor for in memory repositories. It calls fn with a nil connection.
type NoTx struct{}

// InTx calls fn without opening any transaction
func (NoTx) InTx(_ context.Context, fn func(conn db.Querier) error) error {
	return fn(nil)
}
