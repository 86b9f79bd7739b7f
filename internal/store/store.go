// Copyright 2026 The Rentrack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store opens the record store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rentrack/rentrack/internal/config"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/store/gormstore"
	"github.com/rentrack/rentrack/internal/store/postgres"
	"github.com/rentrack/rentrack/internal/tenant"
)

// Store bundles the repositories of one backend
type Store struct {
	Tenants  tenant.Repository
	Payments payment.Repository

	driver  string
	migrate func(ctx context.Context) error
	reset   func(ctx context.Context) (int64, error)
	close   func()
}

// Open connects to the backend named by cfg.Store.Driver
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Database:     cfg.Database.Database,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Tenants:  postgres.NewTenantRepository(db),
			Payments: postgres.NewPaymentRepository(db),
			driver:   config.DriverPostgres,
			migrate: func(ctx context.Context) error {
				applied, err := db.MigrateAll(ctx)
				for _, name := range applied {
					slog.InfoContext(ctx, "applied migration", logger.String("file", name))
				}
				return err
			},
			reset: db.Reset,
			close: db.Close,
		}, nil

	case config.DriverSQLite, config.DriverMySQL:
		dsn := cfg.Store.SQLitePath
		if cfg.Store.Driver == config.DriverMySQL {
			dsn = cfg.Store.MySQLDSN
		}
		db, err := gormstore.Open(gormstore.Config{
			Driver:  cfg.Store.Driver,
			DSN:     dsn,
			Verbose: cfg.Observability.LogLevel == "debug",
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Tenants:  gormstore.NewTenantRepository(db),
			Payments: gormstore.NewPaymentRepository(db),
			driver:   db.Driver(),
			migrate:  func(context.Context) error { return db.Migrate() },
			reset:    db.Reset,
			close: func() {
				if err := db.Close(); err != nil {
					slog.Error("failed to close database", logger.Error(err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

// Migrate brings the schema up to date
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Reset deletes all payments and tenants and returns the number of rows removed
func (s *Store) Reset(ctx context.Context) (int64, error) {
	return s.reset(ctx)
}

// Driver returns the backend name
func (s *Store) Driver() string {
	return s.driver
}

// Close releases the connection pool
func (s *Store) Close() {
	s.close()
}
