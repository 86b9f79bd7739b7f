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
	"fmt"
	"strings"
)

// Frequency is the number of months between consecutive due dates.
type Frequency int

const (
	FrequencyMonthly    Frequency = 1
	FrequencyQuarterly  Frequency = 3
	FrequencySemiAnnual Frequency = 6
	FrequencyAnnual     Frequency = 12
)

// Months returns the billing interval in months.
func (f Frequency) Months() int {
	return int(f)
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual:
		return true
	}
	return false
}

func (f Frequency) String() string {
	switch f {
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencySemiAnnual:
		return "semi_annual"
	case FrequencyAnnual:
		return "annual"
	}
	return fmt.Sprintf("every_%d_months", int(f))
}

// ParseFrequency accepts the API names (monthly, semi_annual, ...) as well as
// the form labels ("Semi-Annual").
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "monthly":
		return FrequencyMonthly, nil
	case "quarterly":
		return FrequencyQuarterly, nil
	case "semi_annual", "semiannual":
		return FrequencySemiAnnual, nil
	case "annual", "yearly":
		return FrequencyAnnual, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

func (f Frequency) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrequency, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
