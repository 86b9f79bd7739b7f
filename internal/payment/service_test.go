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
	"testing"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Payment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*Payment), args.Error(1)
}

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error { return nil }
func (m *mockTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}
func (m *mockTenantRepo) ListActive(ctx context.Context) ([]*tenant.Tenant, error) { return nil, nil }
func (m *mockTenantRepo) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	return nil
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func activeTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:        "t-1",
		Unit:      "A-101",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Rent:      decimal.NewFromInt(1000),
		Frequency: tenant.FrequencyMonthly,
	}
}

func TestService_RecordPayment_DefaultsToRent(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	tenantRepo := new(mockTenantRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, tenantRepo, auditLogger, noop.Int64Counter{})

	tenantRepo.On("GetByID", ctx, "t-1").Return(activeTenant(), nil)
	repo.On("Create", ctx, mock.MatchedBy(func(p *Payment) bool {
		return p.TenantID == "t-1" && p.AmountDue.Equal(decimal.NewFromInt(1000)) && p.DueDate == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*Payment).ID = "p-1"
	}).Return(nil)
	auditLogger.On("Log", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypePaymentRecorded && e.Resource == "p-1"
	})).Return()

	p, err := service.RecordPayment(ctx, RecordPaymentInput{
		TenantID:    "t-1",
		AmountPaid:  decimal.NewFromInt(600),
		PaymentDate: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, MethodCash, p.Method)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), p.PaymentDate)
	assert.True(t, p.Remaining().Equal(decimal.NewFromInt(400)))

	repo.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}

func TestService_RecordPayment_ExplicitInstallment(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	tenantRepo := new(mockTenantRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, tenantRepo, auditLogger, nil)

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	amountDue := decimal.NewFromInt(1200)

	tenantRepo.On("GetByID", ctx, "t-1").Return(activeTenant(), nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	auditLogger.On("Log", ctx, mock.Anything).Return()

	p, err := service.RecordPayment(ctx, RecordPaymentInput{
		TenantID:    "t-1",
		Installment: 3,
		DueDate:     &due,
		AmountDue:   &amountDue,
		AmountPaid:  decimal.NewFromInt(1500),
		PaymentDate: due,
		Method:      MethodBankTransfer,
	})
	require.NoError(t, err)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, due, *p.DueDate)
	assert.True(t, p.Remaining().Equal(decimal.NewFromInt(-300)), "overpayment is representable")
}

func TestService_RecordPayment_Rejects(t *testing.T) {
	ctx := context.Background()
	ended := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	removed := activeTenant()
	removed.EndDate = &ended

	t.Run("negative amount paid", func(t *testing.T) {
		service := NewService(new(mockRepo), new(mockTenantRepo), new(mockAudit), nil)
		_, err := service.RecordPayment(ctx, RecordPaymentInput{TenantID: "t-1", AmountPaid: decimal.NewFromInt(-5)})
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("unknown method", func(t *testing.T) {
		service := NewService(new(mockRepo), new(mockTenantRepo), new(mockAudit), nil)
		_, err := service.RecordPayment(ctx, RecordPaymentInput{TenantID: "t-1", Method: "bitcoin"})
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("removed tenant", func(t *testing.T) {
		tenantRepo := new(mockTenantRepo)
		repo := new(mockRepo)
		service := NewService(repo, tenantRepo, new(mockAudit), nil)
		tenantRepo.On("GetByID", ctx, "t-1").Return(removed, nil)

		_, err := service.RecordPayment(ctx, RecordPaymentInput{TenantID: "t-1", AmountPaid: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, tenant.ErrTenantInactive)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		tenantRepo := new(mockTenantRepo)
		service := NewService(new(mockRepo), tenantRepo, new(mockAudit), nil)
		tenantRepo.On("GetByID", ctx, "missing").Return(nil, tenant.ErrTenantNotFound)

		_, err := service.RecordPayment(ctx, RecordPaymentInput{TenantID: "missing"})
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("Bank Transfer")
	require.NoError(t, err)
	assert.Equal(t, MethodBankTransfer, m)

	_, err = ParseMethod("card")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
