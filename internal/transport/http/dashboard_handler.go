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

	"github.com/rentrack/rentrack/internal/billing"
	"github.com/shopspring/decimal"
)

type RecordStatusRequest struct {
	AmountDue   decimal.Decimal `json:"amount_due" swaggertype:"string" example:"1000.00"`
	AmountPaid  decimal.Decimal `json:"amount_paid" swaggertype:"string" example:"400.00"`
	DueDate     string          `json:"due_date" validate:"required,datetime=2006-01-02" example:"2024-02-01"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02" example:"2024-02-03"`
}

type RecordStatusResponse struct {
	Status billing.StatusTag `json:"status"`
	Label  string            `json:"label"`
}

// GetSummary returns the status of every active tenant
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Param as_of query string false "Evaluation date (YYYY-MM-DD), defaults to today"
// @Param policy query string false "aggregate (default) or record"
// @Success 200 {object} dashboard.Summary
// @Failure 400 {object} map[string]string
// @Router /dashboard/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	asOf, err := parseDate("as_of", q.Get("as_of"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	policy, err := billing.ParsePolicy(q.Get("policy"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	summary, err := h.dashboardService.Summary(r.Context(), asOf, policy)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// EvaluateRecordStatus evaluates one installment under the record policy
// without storing anything
// @Summary Record status
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body RecordStatusRequest true "Installment"
// @Success 200 {object} RecordStatusResponse
// @Failure 400 {object} map[string]string
// @Router /status/record [post]
func (h *Handler) EvaluateRecordStatus(w http.ResponseWriter, r *http.Request) {
	var req RecordStatusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	paymentDate, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	status, err := h.dashboardService.RecordStatus(req.AmountDue, req.AmountPaid, dueDate, paymentDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, RecordStatusResponse{Status: status, Label: status.Label()})
}
