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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPayment = errors.New("invalid payment")
	ErrInvalidMethod  = errors.New("invalid payment method")
)

// Payment is one append-only ledger row. DueDate is nil when the payment is
// not tied to a specific billing period.
type Payment struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	Installment int             `json:"installment,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      Method          `json:"method"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Remaining is AmountDue - AmountPaid. Overpayment yields a negative value.
func (p *Payment) Remaining() decimal.Decimal {
	return p.AmountDue.Sub(p.AmountPaid)
}

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheque       Method = "cheque"
)

func (m Method) Valid() bool {
	return m == MethodCash || m == MethodBankTransfer || m == MethodCheque
}

// ParseMethod also accepts the form labels ("Bank Transfer").
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	m := Method(key)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// Repository is the append-only record store capability for payments.
// Once Create returns, ListByTenant must include the new row.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Payment, error)
}
