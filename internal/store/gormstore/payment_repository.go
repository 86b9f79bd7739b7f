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
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentrack/rentrack/internal/payment"
)

// PaymentRepository implements payment.Repository
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment to the ledger
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate payment id: %w", err)
		}
		p.ID = id.String()
	}
	p.CreatedAt = time.Now().UTC()

	if err := r.db.gorm.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListByTenant retrieves a tenant's payments ordered by payment date, then
// insertion
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	var models []paymentModel
	err := r.db.gorm.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date").Order("created_at").Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*payment.Payment, 0, len(models))
	for i := range models {
		payments = append(payments, models[i].toDomain())
	}
	return payments, nil
}
