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
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO payments (id, tenant_id, installment, due_date, amount_due, amount_paid, payment_date, method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		p.ID, p.TenantID, p.Installment, p.DueDate,
		p.AmountDue, p.AmountPaid, p.PaymentDate,
		string(p.Method), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// ListByTenant retrieves a tenant's payments ordered by payment date, then
// insertion
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, installment, due_date, amount_due, amount_paid, payment_date, method, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY payment_date, created_at, id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*payment.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var (
		p      payment.Payment
		method string
	)
	if err := row.Scan(
		&p.ID, &p.TenantID, &p.Installment, &p.DueDate,
		&p.AmountDue, &p.AmountPaid, &p.PaymentDate,
		&method, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Method = payment.Method(method)
	return &p, nil
}
