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

package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/rentrack/rentrack/internal/billing"
	"github.com/rentrack/rentrack/internal/dashboard"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) SetEndDate(ctx context.Context, id string, endDate time.Time) error {
	return m.Called(ctx, id, endDate).Error(0)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPaymentRepo) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

type testServer struct {
	handler  *Handler
	router   http.Handler
	tenants  *mockTenantRepo
	payments *mockPaymentRepo
	audit    *mockAudit
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tenants := new(mockTenantRepo)
	payments := new(mockPaymentRepo)
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.Anything).Maybe()

	h := NewHandler(
		tenant.NewService(tenants, auditLogger),
		payment.NewService(payments, tenants, auditLogger, metricnoop.Int64Counter{}),
		dashboard.NewService(tenants, payments, billing.NewEngine(0),
			tracenoop.NewTracerProvider().Tracer("test"), metricnoop.Int64Counter{}),
		HandlerConfig{ServiceName: "rentrack-test", RequestTimeout: 5 * time.Second},
	)

	rl := NewRateLimiter(1000, 1000)
	t.Cleanup(rl.Stop)

	return &testServer{
		handler:  h,
		router:   NewRouter(h, rl),
		tenants:  tenants,
		payments: payments,
		audit:    auditLogger,
	}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTenant(id, unit string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:           id,
		Unit:         unit,
		Name:         "Tenant " + unit,
		Phone:        "0700111222",
		StartDate:    date(2024, 1, 1),
		Rent:         decimal.NewFromInt(1000),
		Frequency:    tenant.FrequencyMonthly,
		PropertyType: tenant.PropertyResidential,
	}
}
