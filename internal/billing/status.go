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

package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
)

// StatusTag summarises the payment state of a tenant or of a single record.
type StatusTag string

const (
	StatusPaid    StatusTag = "paid"
	StatusUnpaid  StatusTag = "unpaid"
	StatusOverdue StatusTag = "overdue"
	StatusDueSoon StatusTag = "due_soon"
	StatusPartial StatusTag = "partial"
)

// Statuses lists every tag in display order.
var Statuses = []StatusTag{StatusOverdue, StatusDueSoon, StatusPartial, StatusUnpaid, StatusPaid}

// Label returns the human readable form used by the dashboard.
func (s StatusTag) Label() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusUnpaid:
		return "Unpaid"
	case StatusOverdue:
		return "Overdue"
	case StatusDueSoon:
		return "Due Soon"
	case StatusPartial:
		return "Partial"
	}
	return string(s)
}

// StatusPolicy names one of the two status derivation strategies. They are
// kept apart on purpose: the aggregate policy compares lifetime billed against
// lifetime paid, the record policy looks at one installment at a time.
type StatusPolicy string

const (
	PolicyAggregate StatusPolicy = "aggregate"
	PolicyRecord    StatusPolicy = "record"
)

var ErrUnknownPolicy = errors.New("unknown status policy")

// ParsePolicy maps an empty string to PolicyAggregate.
func ParsePolicy(s string) (StatusPolicy, error) {
	switch StatusPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAggregate:
		return PolicyAggregate, nil
	case PolicyRecord:
		return PolicyRecord, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// DefaultDueSoonWindow is how close the next due date must be for DueSoon.
const DefaultDueSoonWindow = 7 * 24 * time.Hour

// AggregateResult is the outcome of the aggregate policy for one tenant.
type AggregateResult struct {
	DueDates []time.Time     `json:"due_dates"`
	Expected decimal.Decimal `json:"expected"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
	Status   StatusTag       `json:"status"`
	NextDue  time.Time       `json:"next_due"`
}

// Engine evaluates both policies. The zero value is not usable; use NewEngine.
type Engine struct {
	dueSoonWindow time.Duration
}

// NewEngine returns an engine with the given DueSoon window. A non-positive
// window selects DefaultDueSoonWindow.
func NewEngine(dueSoonWindow time.Duration) *Engine {
	if dueSoonWindow <= 0 {
		dueSoonWindow = DefaultDueSoonWindow
	}
	return &Engine{dueSoonWindow: dueSoonWindow}
}

func (e *Engine) DueSoonWindow() time.Duration {
	return e.dueSoonWindow
}

var defaultEngine = NewEngine(DefaultDueSoonWindow)

// ComputeAggregateStatus evaluates the aggregate policy with the default window.
func ComputeAggregateStatus(t *tenant.Tenant, payments []*payment.Payment, asOf time.Time) (*AggregateResult, error) {
	return defaultEngine.AggregateStatus(t, payments, asOf)
}

// AggregateStatus compares everything billed up to asOf with everything paid.
//
// The status is, in order: Paid when nothing is owed; Overdue when a due date
// strictly before asOf exists; DueSoon when the next due date is within the
// window; Unpaid otherwise. A due date equal to asOf is not yet overdue.
func (e *Engine) AggregateStatus(t *tenant.Tenant, payments []*payment.Payment, asOf time.Time) (*AggregateResult, error) {
	if t == nil {
		return nil, &InvalidScheduleError{Reason: "tenant is required"}
	}
	if t.Rent.IsNegative() {
		return nil, &NegativeAmountError{Field: "rent", Amount: t.Rent}
	}

	asOf = tenant.Date(asOf)
	months := t.Frequency.Months()
	dueDates, err := GenerateDueDates(t.StartDate, months, asOf)
	if err != nil {
		return nil, err
	}

	paid, err := TotalPaid(payments)
	if err != nil {
		return nil, err
	}

	expected := t.Rent.Mul(decimal.NewFromInt(int64(len(dueDates))))
	result := &AggregateResult{
		DueDates: dueDates,
		Expected: expected,
		Paid:     paid,
		Balance:  expected.Sub(paid),
		NextDue:  NextDueDate(t.StartDate, months, len(dueDates)),
	}

	switch {
	case !result.Balance.IsPositive():
		result.Status = StatusPaid
	case hasElapsed(dueDates, asOf):
		result.Status = StatusOverdue
	case result.NextDue.Sub(asOf) <= e.dueSoonWindow:
		result.Status = StatusDueSoon
	default:
		result.Status = StatusUnpaid
	}

	return result, nil
}

func hasElapsed(dueDates []time.Time, asOf time.Time) bool {
	for _, d := range dueDates {
		if d.Before(asOf) {
			return true
		}
	}
	return false
}

// RecordStatus evaluates the record policy; see ComputeRecordStatus.
func (e *Engine) RecordStatus(amountDue, amountPaid decimal.Decimal, dueDate, paymentDate time.Time) (StatusTag, error) {
	return ComputeRecordStatus(amountDue, amountPaid, dueDate, paymentDate)
}

// ComputeRecordStatus derives the status of one installment in isolation:
// Paid when the amounts match exactly, Unpaid when nothing was paid, Overdue
// when the payment came after the due date and Partial otherwise. Dates are
// compared as calendar dates. An overpaid installment is not Paid.
func ComputeRecordStatus(amountDue, amountPaid decimal.Decimal, dueDate, paymentDate time.Time) (StatusTag, error) {
	if amountDue.IsNegative() {
		return "", &NegativeAmountError{Field: "amount_due", Amount: amountDue}
	}
	if amountPaid.IsNegative() {
		return "", &NegativeAmountError{Field: "amount_paid", Amount: amountPaid}
	}

	switch {
	case amountPaid.Equal(amountDue):
		return StatusPaid, nil
	case amountPaid.IsZero():
		return StatusUnpaid, nil
	case tenant.Date(paymentDate).After(tenant.Date(dueDate)):
		return StatusOverdue, nil
	default:
		return StatusPartial, nil
	}
}
