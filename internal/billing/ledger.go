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
	"time"

	"github.com/rentrack/rentrack/internal/payment"
	"github.com/shopspring/decimal"
)

// TotalPaid sums AmountPaid over every payment, regardless of date or due
// period. Overpaying one period offsets underpaying another.
func TotalPaid(payments []*payment.Payment) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range payments {
		if p == nil {
			continue
		}
		if p.AmountPaid.IsNegative() {
			return decimal.Zero, &NegativeAmountError{Field: "amount_paid", Amount: p.AmountPaid}
		}
		total = total.Add(p.AmountPaid)
	}
	return total, nil
}

// Allocation is the share of the paid total applied to one billing period.
type Allocation struct {
	DueDate     time.Time       `json:"due_date"`
	Due         decimal.Decimal `json:"due"`
	Applied     decimal.Decimal `json:"applied"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Allocate spreads paid over the due dates oldest first. Whatever is left
// after the last period is returned as credit.
func Allocate(dueDates []time.Time, rent, paid decimal.Decimal) ([]Allocation, decimal.Decimal) {
	remaining := decimal.Max(paid, decimal.Zero)
	allocations := make([]Allocation, 0, len(dueDates))
	for _, due := range dueDates {
		applied := decimal.Min(remaining, rent)
		remaining = remaining.Sub(applied)
		allocations = append(allocations, Allocation{
			DueDate:     due,
			Due:         rent,
			Applied:     applied,
			Outstanding: rent.Sub(applied),
		})
	}
	return allocations, remaining
}
