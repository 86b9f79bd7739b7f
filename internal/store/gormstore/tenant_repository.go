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

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentrack/rentrack/internal/tenant"
	"gorm.io/gorm"
)

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a new tenant. The active-unit check runs in the same
// transaction as the insert.
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate tenant id: %w", err)
		}
		t.ID = id.String()
	}
	t.CreatedAt = time.Now().UTC()

	return r.db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.Active() {
			var held int64
			err := tx.Model(&tenantModel{}).
				Where("LOWER(unit) = LOWER(?) AND end_date IS NULL", t.Unit).
				Count(&held).Error
			if err != nil {
				return fmt.Errorf("failed to check unit: %w", err)
			}
			if held > 0 {
				return tenant.ErrUnitOccupied
			}
		}

		if err := tx.Create(toTenantModel(t)).Error; err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a tenant by ID, active or not
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var m tenantModel
	err := r.db.gorm.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return m.toDomain(), nil
}

// ListActive retrieves tenants without an end date, ordered by unit
func (r *TenantRepository) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	var models []tenantModel
	err := r.db.gorm.WithContext(ctx).
		Where("end_date IS NULL").
		Order("unit").Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	tenants := make([]*tenant.Tenant, 0, len(models))
	for i := range models {
		tenants = append(tenants, models[i].toDomain())
	}
	return tenants, nil
}

// SetEndDate ends a lease
func (r *TenantRepository) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	result := r.db.gorm.WithContext(ctx).
		Model(&tenantModel{}).
		Where("id = ?", id).
		Update("end_date", endDate)
	if result.Error != nil {
		return fmt.Errorf("failed to set tenant end date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}
