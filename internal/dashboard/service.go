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

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentrack/rentrack/internal/billing"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// summaryWorkers bounds the tenants evaluated concurrently by Summary.
const summaryWorkers = 8

// SummaryRow is one line of the active tenant table. Rows whose computation
// failed carry Error and no status.
type SummaryRow struct {
	TenantID   string            `json:"tenant_id"`
	Unit       string            `json:"unit"`
	TenantName string            `json:"tenant"`
	Phone      string            `json:"phone"`
	Rent       decimal.Decimal   `json:"rent"`
	Balance    decimal.Decimal   `json:"balance"`
	Status     billing.StatusTag `json:"status,omitempty"`
	NextDue    *time.Time        `json:"next_due,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Summary is the dashboard header plus its rows.
type Summary struct {
	AsOf             time.Time                 `json:"as_of"`
	Policy           billing.StatusPolicy      `json:"policy"`
	Rows             []SummaryRow              `json:"rows"`
	Counts           map[billing.StatusTag]int `json:"counts"`
	TotalOutstanding decimal.Decimal           `json:"total_outstanding"`
}

// PaymentRow is a payment annotated with its record policy status.
type PaymentRow struct {
	*payment.Payment
	Remaining decimal.Decimal   `json:"remaining"`
	Status    billing.StatusTag `json:"status"`
}

// Detail is everything shown for one tenant.
type Detail struct {
	Tenant      *tenant.Tenant           `json:"tenant"`
	AsOf        time.Time                `json:"as_of"`
	Aggregate   *billing.AggregateResult `json:"aggregate"`
	Allocations []billing.Allocation     `json:"allocations"`
	Credit      decimal.Decimal          `json:"credit"`
	Payments    []PaymentRow             `json:"payments"`
}

// Service builds dashboard views from the record store. It holds no data of
// its own; each call reads a fresh snapshot through the repositories.
type Service struct {
	tenants  tenant.Repository
	payments payment.Repository
	engine   *billing.Engine
	tracer   trace.Tracer
	computed metric.Int64Counter
	now      func() time.Time
}

func NewService(
	tenants tenant.Repository,
	payments payment.Repository,
	engine *billing.Engine,
	tracer trace.Tracer,
	computed metric.Int64Counter,
) *Service {
	return &Service{
		tenants:  tenants,
		payments: payments,
		engine:   engine,
		tracer:   tracer,
		computed: computed,
		now:      time.Now,
	}
}

// Summary evaluates every active tenant under the given policy. A failure for
// one tenant is reported on its row and does not stop the others.
func (s *Service) Summary(ctx context.Context, asOf time.Time, policy billing.StatusPolicy) (*Summary, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = tenant.Date(asOf)

	ctx, span := s.tracer.Start(ctx, "dashboard.Summary", trace.WithAttributes(
		attribute.String("policy", string(policy)),
		attribute.String("as_of", asOf.Format(time.DateOnly)),
	))
	defer span.End()

	active, err := s.tenants.ListActive(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}
	span.SetAttributes(attribute.Int("tenants", len(active)))

	rows := make([]SummaryRow, len(active))
	p := pool.New().WithMaxGoroutines(summaryWorkers)
	for i, t := range active {
		i, t := i, t
		p.Go(func() {
			row := SummaryRow{
				TenantID:   t.ID,
				Unit:       t.Unit,
				TenantName: t.Name,
				Phone:      t.Phone,
				Rent:       t.Rent,
			}

			if err := s.fillRow(ctx, &row, t, asOf, policy); err != nil {
				slog.WarnContext(ctx, "failed to compute tenant status",
					logger.TenantID(t.ID),
					logger.Unit(t.Unit),
					logger.Error(err),
				)
				row.Status = ""
				row.Error = err.Error()
			} else {
				s.record(ctx, policy, row.Status)
			}
			rows[i] = row
		})
	}
	p.Wait()

	return &Summary{
		AsOf:             asOf,
		Policy:           policy,
		Rows:             rows,
		Counts:           Counts(rows),
		TotalOutstanding: TotalOutstanding(rows),
	}, nil
}

// Counts is the status breakdown of the rows that computed successfully.
func Counts(rows []SummaryRow) map[billing.StatusTag]int {
	return lo.CountValuesBy(computed(rows), func(r SummaryRow) billing.StatusTag { return r.Status })
}

// TotalOutstanding sums the positive balances. Credit held by one tenant does
// not offset another tenant's debt.
func TotalOutstanding(rows []SummaryRow) decimal.Decimal {
	return lo.Reduce(computed(rows), func(acc decimal.Decimal, r SummaryRow, _ int) decimal.Decimal {
		if r.Balance.IsPositive() {
			return acc.Add(r.Balance)
		}
		return acc
	}, decimal.Zero)
}

func computed(rows []SummaryRow) []SummaryRow {
	return lo.Filter(rows, func(r SummaryRow, _ int) bool { return r.Error == "" })
}

func (s *Service) fillRow(ctx context.Context, row *SummaryRow, t *tenant.Tenant, asOf time.Time, policy billing.StatusPolicy) error {
	payments, err := s.payments.ListByTenant(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}

	switch policy {
	case billing.PolicyAggregate:
		res, err := s.engine.AggregateStatus(t, payments, asOf)
		if err != nil {
			return err
		}
		row.Balance = res.Balance
		row.Status = res.Status
		row.NextDue = lo.ToPtr(res.NextDue)
		return nil
	case billing.PolicyRecord:
		return s.fillRecordRow(row, payments, asOf)
	}
	return fmt.Errorf("%w: %q", billing.ErrUnknownPolicy, policy)
}

// fillRecordRow follows the payment-records sheet: the balance is the sum of
// what remains on each record, the next due date is the earliest record due on
// or after asOf and the status is that of the latest record.
func (s *Service) fillRecordRow(row *SummaryRow, payments []*payment.Payment, asOf time.Time) error {
	balance := decimal.Zero
	var next *time.Time
	for _, p := range payments {
		balance = balance.Add(p.Remaining())
		due := dueDateOf(p)
		if !due.Before(asOf) && (next == nil || due.Before(*next)) {
			next = lo.ToPtr(due)
		}
	}
	row.Balance = balance
	row.NextDue = next

	if len(payments) == 0 {
		row.Status = billing.StatusUnpaid
		return nil
	}
	last := payments[len(payments)-1]
	status, err := s.engine.RecordStatus(last.AmountDue, last.AmountPaid, dueDateOf(last), last.PaymentDate)
	if err != nil {
		return err
	}
	row.Status = status
	return nil
}

// TenantDetail returns the aggregate view of one tenant together with each of
// its payments under the record policy. Billing of a removed tenant stops at
// its end date.
func (s *Service) TenantDetail(ctx context.Context, id string, asOf time.Time) (*Detail, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = tenant.Date(asOf)

	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.EndDate != nil && t.EndDate.Before(asOf) {
		asOf = tenant.Date(*t.EndDate)
	}

	payments, err := s.payments.ListByTenant(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	res, err := s.engine.AggregateStatus(t, payments, asOf)
	if err != nil {
		return nil, err
	}
	allocations, credit := billing.Allocate(res.DueDates, t.Rent, res.Paid)

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		status, err := s.engine.RecordStatus(p.AmountDue, p.AmountPaid, dueDateOf(p), p.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
		rows = append(rows, PaymentRow{Payment: p, Remaining: p.Remaining(), Status: status})
	}

	return &Detail{
		Tenant:      t,
		AsOf:        asOf,
		Aggregate:   res,
		Allocations: allocations,
		Credit:      credit,
		Payments:    rows,
	}, nil
}

// RecordStatus evaluates an ad-hoc installment under the record policy.
func (s *Service) RecordStatus(amountDue, amountPaid decimal.Decimal, dueDate, paymentDate time.Time) (billing.StatusTag, error) {
	return s.engine.RecordStatus(amountDue, amountPaid, dueDate, paymentDate)
}

func (s *Service) record(ctx context.Context, policy billing.StatusPolicy, status billing.StatusTag) {
	if s.computed == nil {
		return
	}
	s.computed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy", string(policy)),
		attribute.String("status", string(status)),
	))
}

// dueDateOf treats a payment without a due date as due on the day it was paid.
func dueDateOf(p *payment.Payment) time.Time {
	if p.DueDate != nil {
		return *p.DueDate
	}
	return p.PaymentDate
}
