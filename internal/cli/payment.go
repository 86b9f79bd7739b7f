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

package cli

import (
	"fmt"
	"io"

	"github.com/rentrack/rentrack/internal/dashboard"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (r *runner) paymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record and list payments",
	}
	cmd.AddCommand(r.paymentAddCmd(), r.paymentListCmd())
	return cmd
}

func (r *runner) paymentAddCmd() *cobra.Command {
	var paid, due, dueDate, paidOn, method string
	var installment int

	cmd := &cobra.Command{
		Use:   "add <tenant-id>",
		Short: "Record a payment for an active tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountPaid, err := parseAmountFlag("paid", paid)
			if err != nil {
				return err
			}
			var amountDue *decimal.Decimal
			if due != "" {
				d, err := parseAmountFlag("due", due)
				if err != nil {
					return err
				}
				amountDue = &d
			}
			dueOn, err := parseOptionalDateFlag("due-date", dueDate)
			if err != nil {
				return err
			}
			paymentDate, err := parseDateFlag("date", paidOn)
			if err != nil {
				return err
			}
			m, err := payment.ParseMethod(method)
			if err != nil {
				return err
			}

			p, err := r.app.Payments.RecordPayment(cmd.Context(), payment.RecordPaymentInput{
				TenantID:    args[0],
				Installment: installment,
				DueDate:     dueOn,
				AmountDue:   amountDue,
				AmountPaid:  amountPaid,
				PaymentDate: paymentDate,
				Method:      m,
				Actor:       r.operator,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded payment %s: paid %s of %s\n",
				p.ID, p.AmountPaid.StringFixed(2), p.AmountDue.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&paid, "paid", "", "amount paid")
	cmd.Flags().StringVar(&due, "due", "", "amount due, defaults to the tenant's rent")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "due date of the installment (YYYY-MM-DD)")
	cmd.Flags().StringVar(&paidOn, "date", "", "payment date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&method, "method", string(payment.MethodCash), "cash, bank_transfer or cheque")
	cmd.Flags().IntVar(&installment, "installment", 0, "installment number")
	_ = cmd.MarkFlagRequired("paid")

	return cmd
}

func (r *runner) paymentListCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "list <tenant-id>",
		Short: "List the payments of a tenant with their record status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseDateFlag("as-of", asOf)
			if err != nil {
				return err
			}
			d, err := r.app.Dashboard.TenantDetail(cmd.Context(), args[0], at)
			if err != nil {
				return err
			}
			return writePayments(cmd.OutOrStdout(), d.Payments)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluation date (YYYY-MM-DD), defaults to today")
	return cmd
}

func writePayments(out io.Writer, rows []dashboard.PaymentRow) error {
	w := newTable(out)
	fmt.Fprintln(w, "PAID ON\tDUE ON\tDUE\tPAID\tREMAINING\tMETHOD\tSTATUS")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			formatDate(&p.PaymentDate), formatDate(p.DueDate),
			p.AmountDue.StringFixed(2), p.AmountPaid.StringFixed(2), p.Remaining.StringFixed(2),
			p.Method, p.Status.Label())
	}
	return w.Flush()
}
