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

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RecordPaymentInput carries the fields of the "Add Payment" form. A nil
// AmountDue bills the tenant's rent; a nil DueDate records the payment
// against the lease as a whole.
type RecordPaymentInput struct {
	TenantID    string
	Installment int
	DueDate     *time.Time
	AmountDue   *decimal.Decimal
	AmountPaid  decimal.Decimal
	PaymentDate time.Time
	Method      Method
	Actor       string
}

type Service struct {
	repo        Repository
	tenantRepo  tenant.Repository
	auditLogger audit.Logger
	recorded    metric.Int64Counter
}

func NewService(repo Repository, tenantRepo tenant.Repository, auditLogger audit.Logger, recorded metric.Int64Counter) *Service {
	return &Service{
		repo:        repo,
		tenantRepo:  tenantRepo,
		auditLogger: auditLogger,
		recorded:    recorded,
	}
}

// RecordPayment appends a payment for an active tenant.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*Payment, error) {
	if in.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: amount paid must not be negative, got %s", ErrInvalidPayment, in.AmountPaid)
	}
	if in.AmountDue != nil && in.AmountDue.IsNegative() {
		return nil, fmt.Errorf("%w: amount due must not be negative, got %s", ErrInvalidPayment, *in.AmountDue)
	}
	if in.Installment < 0 {
		return nil, fmt.Errorf("%w: installment must be positive", ErrInvalidPayment)
	}
	method := in.Method
	if method == "" {
		method = MethodCash
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	t, err := s.tenantRepo.GetByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !t.Active() {
		return nil, fmt.Errorf("%w: %s", tenant.ErrTenantInactive, t.ID)
	}

	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	p := &Payment{
		TenantID:    t.ID,
		Installment: in.Installment,
		AmountDue:   lo.FromPtrOr(in.AmountDue, t.Rent),
		AmountPaid:  in.AmountPaid,
		PaymentDate: tenant.Date(paymentDate),
		Method:      method,
		CreatedAt:   time.Now().UTC(),
	}
	if in.DueDate != nil {
		p.DueDate = lo.ToPtr(tenant.Date(*in.DueDate))
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if s.recorded != nil {
		s.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("method", string(method))))
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePaymentRecorded,
		TenantID: t.ID,
		ActorID:  in.Actor,
		Resource: p.ID,
		Metadata: map[string]any{
			"amount_due":   p.AmountDue.String(),
			"amount_paid":  p.AmountPaid.String(),
			"payment_date": p.PaymentDate.Format(time.DateOnly),
			"method":       string(p.Method),
		},
	})

	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, tenantID string) ([]*Payment, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenant(ctx, tenantID)
}
