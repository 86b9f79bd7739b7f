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
	"testing"
	"time"

	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:        "t-1",
		Unit:      "A-101",
		StartDate: date(2024, 1, 1),
		Rent:      decimal.NewFromInt(1000),
		Frequency: tenant.FrequencyMonthly,
	}
}

func TestComputeAggregateStatus_Scenarios(t *testing.T) {
	t.Run("unpaid months are overdue", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), nil, date(2024, 4, 1))
		require.NoError(t, err)
		assert.Len(t, res.DueDates, 4)
		assert.True(t, res.Expected.Equal(decimal.NewFromInt(4000)))
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(4000)))
		assert.Equal(t, StatusOverdue, res.Status)
		assert.Equal(t, date(2024, 5, 1), res.NextDue)
	})

	t.Run("fully paid", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), paid(1000, 1000, 2000), date(2024, 4, 1))
		require.NoError(t, err)
		assert.True(t, res.Balance.IsZero())
		assert.Equal(t, StatusPaid, res.Status)
	})

	t.Run("first day of lease", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), nil, date(2024, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{date(2024, 1, 1)}, res.DueDates)
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, date(2024, 2, 1), res.NextDue)
		assert.Equal(t, StatusUnpaid, res.Status, "a due date equal to asOf has not elapsed")
	})

	t.Run("overpayment", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), paid(5000), date(2024, 4, 1))
		require.NoError(t, err)
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(-1000)))
		assert.Equal(t, StatusPaid, res.Status)
	})

	t.Run("lease not started", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), nil, date(2023, 12, 1))
		require.NoError(t, err)
		assert.Empty(t, res.DueDates)
		assert.True(t, res.Balance.IsZero())
		assert.Equal(t, StatusPaid, res.Status)
		assert.Equal(t, date(2024, 1, 1), res.NextDue)
	})

	t.Run("time of day ignored", func(t *testing.T) {
		res, err := ComputeAggregateStatus(monthlyTenant(), nil, time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, StatusUnpaid, res.Status)
	})
}

func TestEngine_DueSoon(t *testing.T) {
	tn := monthlyTenant()
	tn.StartDate = date(2024, 2, 1)
	asOf := date(2024, 2, 1)

	res, err := NewEngine(30 * 24 * time.Hour).AggregateStatus(tn, nil, asOf)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), res.NextDue)
	assert.Equal(t, StatusDueSoon, res.Status, "29 days to next due date is inside a 30 day window")

	res, err = NewEngine(28 * 24 * time.Hour).AggregateStatus(tn, nil, asOf)
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, res.Status)

	res, err = NewEngine(29 * 24 * time.Hour).AggregateStatus(tn, nil, asOf)
	require.NoError(t, err)
	assert.Equal(t, StatusDueSoon, res.Status, "window boundary is inclusive")
}

func TestNewEngine_DefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultDueSoonWindow, NewEngine(0).DueSoonWindow())
	assert.Equal(t, 48*time.Hour, NewEngine(48*time.Hour).DueSoonWindow())
}

func TestComputeAggregateStatus_Rejects(t *testing.T) {
	_, err := ComputeAggregateStatus(nil, nil, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	negative := monthlyTenant()
	negative.Rent = decimal.NewFromInt(-1)
	_, err = ComputeAggregateStatus(negative, nil, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	badFrequency := monthlyTenant()
	badFrequency.Frequency = 0
	_, err = ComputeAggregateStatus(badFrequency, nil, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	noStart := monthlyTenant()
	noStart.StartDate = time.Time{}
	_, err = ComputeAggregateStatus(noStart, nil, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = ComputeAggregateStatus(monthlyTenant(), paid(10, -10), date(2024, 4, 1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestComputeAggregateStatus_Idempotent(t *testing.T) {
	payments := paid(700, 300)
	first, err := ComputeAggregateStatus(monthlyTenant(), payments, date(2024, 3, 15))
	require.NoError(t, err)
	second, err := ComputeAggregateStatus(monthlyTenant(), payments, date(2024, 3, 15))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAggregateStatus_Monotonic(t *testing.T) {
	tn := monthlyTenant()
	tn.StartDate = date(2024, 1, 31)
	tn.Frequency = tenant.FrequencyQuarterly

	prevCount := 0
	prevExpected := decimal.Zero
	for asOf := date(2023, 12, 1); asOf.Before(date(2026, 1, 1)); asOf = asOf.AddDate(0, 0, 5) {
		res, err := ComputeAggregateStatus(tn, nil, asOf)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(res.DueDates), prevCount)
		assert.True(t, res.Expected.GreaterThanOrEqual(prevExpected))
		prevCount, prevExpected = len(res.DueDates), res.Expected
	}
}

func TestComputeRecordStatus(t *testing.T) {
	due := date(2024, 3, 1)
	thousand := decimal.NewFromInt(1000)
	half := decimal.NewFromInt(500)

	tests := []struct {
		name        string
		amountDue   decimal.Decimal
		amountPaid  decimal.Decimal
		paymentDate time.Time
		want        StatusTag
	}{
		{"paid in full", thousand, thousand, due.AddDate(0, 0, 10), StatusPaid},
		{"nothing paid", thousand, decimal.Zero, due, StatusUnpaid},
		{"late partial", thousand, half, due.AddDate(0, 0, 1), StatusOverdue},
		{"partial on time", thousand, half, due, StatusPartial},
		{"partial early", thousand, half, due.AddDate(0, 0, -3), StatusPartial},
		{"overpaid late", thousand, decimal.NewFromInt(1200), due.AddDate(0, 0, 1), StatusOverdue},
		{"same day different hour", thousand, half, due.Add(20 * time.Hour), StatusPartial},
		{"nothing due nothing paid", decimal.Zero, decimal.Zero, due, StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRecordStatus(tt.amountDue, tt.amountPaid, due, tt.paymentDate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRecordStatus_Negative(t *testing.T) {
	_, err := ComputeRecordStatus(decimal.NewFromInt(-1), decimal.Zero, date(2024, 1, 1), date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewEngine(0).RecordStatus(decimal.NewFromInt(1), decimal.NewFromInt(-1), date(2024, 1, 1), date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAggregate, p)

	p, err = ParsePolicy("Record")
	require.NoError(t, err)
	assert.Equal(t, PolicyRecord, p)

	_, err = ParsePolicy("merged")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestStatusTag_Label(t *testing.T) {
	assert.Equal(t, "Due Soon", StatusDueSoon.Label())
	assert.Len(t, Statuses, 5)
	for _, s := range Statuses {
		assert.NotEmpty(t, s.Label())
	}
}

