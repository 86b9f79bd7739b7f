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
	"fmt"
	"strings"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/shopspring/decimal"
)

// AddTenantInput carries the fields of the "Add Tenant" form.
type AddTenantInput struct {
	Unit         string
	Name         string
	Phone        string
	StartDate    time.Time
	Rent         decimal.Decimal
	Frequency    Frequency
	PropertyType PropertyType
	Actor        string
}

type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// AddTenant validates the input and inserts a new active tenant.
func (s *Service) AddTenant(ctx context.Context, in AddTenantInput) (*Tenant, error) {
	unit := strings.TrimSpace(in.Unit)
	name := strings.TrimSpace(in.Name)
	if unit == "" {
		return nil, fmt.Errorf("%w: unit is required", ErrInvalidTenant)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTenant)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidTenant)
	}
	if in.Rent.IsNegative() {
		return nil, fmt.Errorf("%w: rent must not be negative, got %s", ErrInvalidTenant, in.Rent)
	}
	if !in.Frequency.Valid() {
		return nil, fmt.Errorf("%w: %d months", ErrInvalidFrequency, int(in.Frequency))
	}
	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = PropertyResidential
	}
	if !propertyType.Valid() {
		return nil, fmt.Errorf("%w: unknown property type %q", ErrInvalidTenant, propertyType)
	}

	// Units are reusable once the previous tenant has been removed.
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}
	for _, t := range active {
		if strings.EqualFold(t.Unit, unit) {
			return nil, fmt.Errorf("%w: %s", ErrUnitOccupied, unit)
		}
	}

	tenant := &Tenant{
		Unit:         unit,
		Name:         name,
		Phone:        strings.TrimSpace(in.Phone),
		StartDate:    Date(in.StartDate),
		Rent:         in.Rent,
		Frequency:    in.Frequency,
		PropertyType: propertyType,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantAdded,
		TenantID: tenant.ID,
		ActorID:  in.Actor,
		Resource: tenant.Unit,
		Metadata: map[string]any{
			"name":      tenant.Name,
			"phone":     tenant.Phone,
			"rent":      tenant.Rent.String(),
			"frequency": tenant.Frequency.String(),
		},
	})

	return tenant, nil
}

// RemoveTenant ends the lease on endDate. Payment history is kept.
func (s *Service) RemoveTenant(ctx context.Context, id string, endDate time.Time, actor string) (*Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tenant.Active() {
		return nil, fmt.Errorf("%w: %s", ErrTenantInactive, id)
	}

	if endDate.IsZero() {
		endDate = time.Now()
	}
	endDate = Date(endDate)
	if endDate.Before(tenant.StartDate) {
		return nil, fmt.Errorf("%w: %s < %s", ErrInvalidEndDate,
			endDate.Format(time.DateOnly), tenant.StartDate.Format(time.DateOnly))
	}

	if err := s.repo.SetEndDate(ctx, id, endDate); err != nil {
		return nil, fmt.Errorf("failed to set end date: %w", err)
	}
	tenant.EndDate = &endDate

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantRemoved,
		TenantID: tenant.ID,
		ActorID:  actor,
		Resource: tenant.Unit,
		Metadata: map[string]any{"end_date": endDate.Format(time.DateOnly)},
	})

	return tenant, nil
}

func (s *Service) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]*Tenant, error) {
	return s.repo.ListActive(ctx)
}
