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
	"context"
	"errors"
	"time"
)

var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrTenantInactive   = errors.New("tenant has already been removed")
	ErrUnitOccupied     = errors.New("unit is already leased to an active tenant")
	ErrInvalidFrequency = errors.New("invalid billing frequency")
	ErrInvalidEndDate   = errors.New("end date is before lease start")
	ErrInvalidTenant    = errors.New("invalid tenant")
)

// Repository is the record store capability for tenants. Implementations
// assign IDs on Create and never physically delete a tenant.
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	ListActive(ctx context.Context) ([]*Tenant, error)
	SetEndDate(ctx context.Context, id string, endDate time.Time) error
}
