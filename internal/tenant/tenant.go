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

package tenant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant is the occupant of a leased unit and the owner of a billing schedule.
type Tenant struct {
	ID           string          `json:"id"`
	Unit         string          `json:"unit"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Rent         decimal.Decimal `json:"rent"`
	Frequency    Frequency       `json:"frequency"`
	PropertyType PropertyType    `json:"property_type"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Active reports whether the lease has no recorded end date.
func (t *Tenant) Active() bool {
	return t.EndDate == nil
}

// PropertyType tags the kind of unit. It does not affect billing.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
)

// Valid reports whether p is a known property type.
func (p PropertyType) Valid() bool {
	return p == PropertyResidential || p == PropertyCommercial
}

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
