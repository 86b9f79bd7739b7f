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

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrNegativeAmount  = errors.New("negative amount")
)

// InvalidScheduleError reports a malformed frequency or a missing start date.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

func (e *InvalidScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

// NegativeAmountError reports a negative rent or amount reaching the engine.
type NegativeAmountError struct {
	Field  string
	Amount decimal.Decimal
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("%s must not be negative, got %s", e.Field, e.Amount.String())
}

func (e *NegativeAmountError) Is(target error) bool {
	return target == ErrNegativeAmount
}
