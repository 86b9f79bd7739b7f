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

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rentrack/rentrack/internal/tenant"
)

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

const tenantColumns = `id, unit, name, phone, start_date, end_date, rent, frequency_months, property_type, created_at`

// Create inserts a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate tenant id: %w", err)
		}
		t.ID = id.String()
	}
	t.CreatedAt = time.Now().UTC()

	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		t.ID, t.Unit, t.Name, t.Phone,
		t.StartDate, t.EndDate, t.Rent,
		t.Frequency.Months(), string(t.PropertyType), t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return tenant.ErrUnitOccupied
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID, active or not
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE id = $1
	`, id)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

// ListActive retrieves tenants without an end date, ordered by unit
func (r *TenantRepository) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE end_date IS NULL
		ORDER BY unit, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*tenant.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return tenants, nil
}

// SetEndDate ends a lease. The row is kept so its payments stay attributable.
func (r *TenantRepository) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE tenants
		SET end_date = $2
		WHERE id = $1
	`, id, endDate)
	if err != nil {
		return fmt.Errorf("failed to set tenant end date: %w", err)
	}

	if result.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}

	return nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		t            tenant.Tenant
		months       int
		propertyType string
	)
	if err := row.Scan(
		&t.ID, &t.Unit, &t.Name, &t.Phone,
		&t.StartDate, &t.EndDate, &t.Rent,
		&months, &propertyType, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.Frequency = tenant.Frequency(months)
	t.PropertyType = tenant.PropertyType(propertyType)
	return &t, nil
}
