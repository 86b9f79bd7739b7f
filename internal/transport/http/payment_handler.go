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

	"github.com/go-chi/chi/v5"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	Installment int              `json:"installment" validate:"gte=0" example:"1"`
	DueDate     string           `json:"due_date" validate:"omitempty,datetime=2006-01-02" example:"2024-02-01"`
	AmountDue   *decimal.Decimal `json:"amount_due,omitempty" swaggertype:"string" example:"1000.00"`
	AmountPaid  decimal.Decimal  `json:"amount_paid" swaggertype:"string" example:"1000.00"`
	PaymentDate string           `json:"payment_date" validate:"omitempty,datetime=2006-01-02" example:"2024-02-03"`
	Method      string           `json:"method" validate:"omitempty,max=32" example:"bank_transfer"`
}

func (r *RecordPaymentRequest) Validate() error {
	return validateRequest(r)
}

// ListPayments lists a tenant's payments in ledger order
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {array} payment.Payment
// @Failure 404 {object} map[string]string
// @Router /tenants/{tenantID}/payments [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// RecordPayment appends a payment for an active tenant
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param request body RecordPaymentRequest true "Payment"
// @Success 201 {object} payment.Payment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants/{tenantID}/payments [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, r, err)
		return
	}

	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	paymentDate, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var method payment.Method
	if req.Method != "" {
		if method, err = payment.ParseMethod(req.Method); err != nil {
			respondServiceError(w, r, err)
			return
		}
	}

	p, err := h.paymentService.RecordPayment(r.Context(), payment.RecordPaymentInput{
		TenantID:    chi.URLParam(r, "tenantID"),
		Installment: req.Installment,
		DueDate:     dueDate,
		AmountDue:   req.AmountDue,
		AmountPaid:  req.AmountPaid,
		PaymentDate: paymentDate,
		Method:      method,
		Actor:       GetOperator(r.Context()),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}
