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

// Package billing derives due dates, balances and payment status for a lease.
//
// Every function in this package is pure: it reads only its arguments, keeps
// no state between calls and may be called concurrently on shared read-only
// tenant and payment values.
package billing

import (
	"fmt"
	"time"

	"github.com/rentrack/rentrack/internal/tenant"
)

// AddMonths adds n calendar months to the date of t, keeping the day of month
// and clamping it to the last day of the target month (Jan 31 + 1 = Feb 29 in
// a leap year). Unlike time.AddDate it never overflows into the next month.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	idx := int(m) - 1 + n
	y += idx / 12
	idx %= 12
	if idx < 0 {
		idx += 12
		y--
	}
	month := time.Month(idx + 1)

	if last := daysIn(y, month); d > last {
		d = last
	}
	return time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GenerateDueDates returns start, start+f, start+2f, ... for every date that is
// on or before horizon. Each date is derived from start rather than from its
// predecessor, so a lease starting on the 31st returns to the 31st whenever
// the month allows it.
//
// An empty slice means nothing has been billed yet (start is after horizon).
func GenerateDueDates(start time.Time, frequencyMonths int, horizon time.Time) ([]time.Time, error) {
	if start.IsZero() {
		return nil, &InvalidScheduleError{Reason: "start date is required"}
	}
	if frequencyMonths <= 0 {
		return nil, &InvalidScheduleError{
			Reason: fmt.Sprintf("frequency must be a positive number of months, got %d", frequencyMonths),
		}
	}

	start, horizon = tenant.Date(start), tenant.Date(horizon)
	dates := []time.Time{}
	for k := 0; ; k++ {
		due := AddMonths(start, k*frequencyMonths)
		if due.After(horizon) {
			break
		}
		dates = append(dates, due)
	}
	return dates, nil
}

// NextDueDate returns the due date following the first count periods.
func NextDueDate(start time.Time, frequencyMonths, count int) time.Time {
	return AddMonths(tenant.Date(start), frequencyMonths*count)
}
