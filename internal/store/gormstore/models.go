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

package gormstore

import (
	"time"

	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
)

// Amounts are stored as text so no dialect rounds them.

type tenantModel struct {
	ID              string          `gorm:"primaryKey;size:36"`
	Unit            string          `gorm:"size:64;not null;index"`
	Name            string          `gorm:"size:255;not null"`
	Phone           string          `gorm:"size:64"`
	StartDate       time.Time       `gorm:"not null"`
	EndDate         *time.Time      `gorm:"index"`
	Rent            decimal.Decimal `gorm:"type:varchar(64);not null"`
	FrequencyMonths int             `gorm:"not null"`
	PropertyType    string          `gorm:"size:32;not null;default:residential"`
	CreatedAt       time.Time
}

func (tenantModel) TableName() string { return "tenants" }

func toTenantModel(t *tenant.Tenant) *tenantModel {
	return &tenantModel{
		ID:              t.ID,
		Unit:            t.Unit,
		Name:            t.Name,
		Phone:           t.Phone,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		Rent:            t.Rent,
		FrequencyMonths: t.Frequency.Months(),
		PropertyType:    string(t.PropertyType),
		CreatedAt:       t.CreatedAt,
	}
}

func (m *tenantModel) toDomain() *tenant.Tenant {
	t := &tenant.Tenant{
		ID:           m.ID,
		Unit:         m.Unit,
		Name:         m.Name,
		Phone:        m.Phone,
		StartDate:    tenant.Date(m.StartDate),
		Rent:         m.Rent,
		Frequency:    tenant.Frequency(m.FrequencyMonths),
		PropertyType: tenant.PropertyType(m.PropertyType),
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.EndDate != nil {
		end := tenant.Date(*m.EndDate)
		t.EndDate = &end
	}
	return t
}

type paymentModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	TenantID    string          `gorm:"size:36;not null;index:idx_payments_tenant_date,priority:1"`
	Installment int             `gorm:"not null;default:0"`
	DueDate     *time.Time
	AmountDue   decimal.Decimal `gorm:"type:varchar(64);not null"`
	AmountPaid  decimal.Decimal `gorm:"type:varchar(64);not null"`
	PaymentDate time.Time       `gorm:"not null;index:idx_payments_tenant_date,priority:2"`
	Method      string          `gorm:"size:32;not null;default:cash"`
	CreatedAt   time.Time
}

func (paymentModel) TableName() string { return "payments" }

func toPaymentModel(p *payment.Payment) *paymentModel {
	return &paymentModel{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Installment: p.Installment,
		DueDate:     p.DueDate,
		AmountDue:   p.AmountDue,
		AmountPaid:  p.AmountPaid,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		CreatedAt:   p.CreatedAt,
	}
}

func (m *paymentModel) toDomain() *payment.Payment {
	p := &payment.Payment{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Installment: m.Installment,
		AmountDue:   m.AmountDue,
		AmountPaid:  m.AmountPaid,
		PaymentDate: tenant.Date(m.PaymentDate),
		Method:      payment.Method(m.Method),
		CreatedAt:   m.CreatedAt.UTC(),
	}
	if m.DueDate != nil {
		due := tenant.Date(*m.DueDate)
		p.DueDate = &due
	}
	return p
}
