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
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
)

type CreateTenantRequest struct {
	Unit         string          `json:"unit" validate:"required,max=64" example:"A-101"`
	Name         string          `json:"name" validate:"required,max=255" example:"Jane Doe"`
	Phone        string          `json:"phone" validate:"omitempty,max=64" example:"0700111222"`
	StartDate    string          `json:"start_date" validate:"required,datetime=2006-01-02" example:"2024-01-01"`
	Rent         decimal.Decimal `json:"rent" swaggertype:"string" example:"1000.00"`
	Frequency    string          `json:"frequency" validate:"required" example:"monthly"`
	PropertyType string          `json:"property_type" validate:"omitempty,oneof=residential commercial" example:"residential"`
}

func (r *CreateTenantRequest) Validate() error {
	r.Unit = strings.TrimSpace(r.Unit)
	r.Name = strings.TrimSpace(r.Name)
	return validateRequest(r)
}

type RemoveTenantRequest struct {
	EndDate string `json:"end_date" validate:"omitempty,datetime=2006-01-02" example:"2024-06-30"`
}

// ListTenants lists active tenants
// @Summary List active tenants
// @Tags Tenants
// @Produce json
// @Success 200 {array} tenant.Tenant
// @Router /tenants [get]
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantService.ListActive(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tenants)
}

// CreateTenant adds a tenant to a free unit
// @Summary Add tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Param request body CreateTenantRequest true "Tenant"
// @Success 201 {object} tenant.Tenant
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants [post]
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, r, err)
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	frequency, err := tenant.ParseFrequency(req.Frequency)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	t, err := h.tenantService.AddTenant(r.Context(), tenant.AddTenantInput{
		Unit:         req.Unit,
		Name:         req.Name,
		Phone:        req.Phone,
		StartDate:    start,
		Rent:         req.Rent,
		Frequency:    frequency,
		PropertyType: tenant.PropertyType(req.PropertyType),
		Actor:        GetOperator(r.Context()),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// GetTenant returns a tenant with its balance, per-period allocation and
// payment history
// @Summary Tenant detail
// @Tags Tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param as_of query string false "Evaluation date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dashboard.Detail
// @Failure 404 {object} map[string]string
// @Router /tenants/{tenantID} [get]
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate("as_of", r.URL.Query().Get("as_of"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	detail, err := h.dashboardService.TenantDetail(r.Context(), chi.URLParam(r, "tenantID"), asOf)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// RemoveTenant ends a lease. The tenant and its payments are kept.
// @Summary Remove tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param end_date query string false "Lease end date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} tenant.Tenant
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants/{tenantID} [delete]
func (h *Handler) RemoveTenant(w http.ResponseWriter, r *http.Request) {
	req := RemoveTenantRequest{EndDate: r.URL.Query().Get("end_date")}
	if req.EndDate == "" {
		if err := decodeJSON(r, &req, true); err != nil {
			respondServiceError(w, r, err)
			return
		}
	}
	if err := validateRequest(&req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	t, err := h.tenantService.RemoveTenant(r.Context(), chi.URLParam(r, "tenantID"), endDate, GetOperator(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}
