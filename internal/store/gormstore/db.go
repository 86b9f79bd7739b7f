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

// Package gormstore is the record store for single-file SQLite deployments
// and for MySQL, built on gorm. Schema is created with AutoMigrate.
package gormstore

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds gorm store configuration
type Config struct {
	Driver string
	// DSN is a file path (or ":memory:") for SQLite and a go-sql-driver DSN
	// for MySQL. MySQL DSNs need parseTime=true&loc=UTC.
	DSN     string
	Verbose bool
}

// DB wraps a gorm handle
type DB struct {
	gorm   *gorm.DB
	driver string
}

// Open connects to the configured database. It does not migrate.
func Open(cfg Config) (*DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.DSN)
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", cfg.Driver)
	}

	level := gormlogger.Warn
	if cfg.Verbose {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	driver := strings.ToLower(cfg.Driver)
	if driver == "" || driver == DriverSQLite {
		driver = DriverSQLite
		// One writer, and ":memory:" databases live on a single connection.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{gorm: db, driver: driver}, nil
}

// Migrate creates or updates the tenants and payments tables
func (db *DB) Migrate() error {
	if err := db.gorm.AutoMigrate(&tenantModel{}, &paymentModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Reset deletes every payment and tenant. Payments go first because they
// reference tenants.
func (db *DB) Reset(ctx context.Context) (int64, error) {
	var total int64
	err := db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&paymentModel{}, &tenantModel{}} {
			res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
			if res.Error != nil {
				return fmt.Errorf("failed to clear table: %w", res.Error)
			}
			total += res.RowsAffected
		}
		return nil
	})
	return total, err
}

// Driver returns the normalized driver name
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the underlying connection pool
func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
