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

	"github.com/rentrack/rentrack/internal/billing"
	"github.com/spf13/cobra"
)

func (r *runner) summaryCmd() *cobra.Command {
	var asOf, policy string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balance and status for every active tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseDateFlag("as-of", asOf)
			if err != nil {
				return err
			}
			p, err := billing.ParsePolicy(policy)
			if err != nil {
				return err
			}

			s, err := r.app.Dashboard.Summary(cmd.Context(), at, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := newTable(out)
			fmt.Fprintln(w, "UNIT\tTENANT\tPHONE\tRENT\tBALANCE\tSTATUS\tNEXT DUE")
			for _, row := range s.Rows {
				status := row.Status.Label()
				if row.Error != "" {
					status = "error: " + row.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Unit, row.TenantName, row.Phone, row.Rent.StringFixed(2),
					row.Balance.StringFixed(2), status, formatDate(row.NextDue))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nas of %s (%s policy), outstanding %s\n",
				formatDate(&s.AsOf), s.Policy, s.TotalOutstanding.StringFixed(2))
			for _, tag := range billing.Statuses {
				if n := s.Counts[tag]; n > 0 {
					fmt.Fprintf(out, "  %s: %d\n", tag.Label(), n)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluation date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&policy, "policy", string(billing.PolicyAggregate), "aggregate or record")
	return cmd
}

func (r *runner) statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Evaluate statuses without touching the store",
	}
	cmd.AddCommand(r.statusRecordCmd())
	return cmd
}

func (r *runner) statusRecordCmd() *cobra.Command {
	var due, paid, dueDate, paidOn string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Status of a single installment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountDue, err := parseAmountFlag("due", due)
			if err != nil {
				return err
			}
			amountPaid, err := parseAmountFlag("paid", paid)
			if err != nil {
				return err
			}
			dueOn, err := parseDateFlag("due-date", dueDate)
			if err != nil {
				return err
			}
			paymentDate, err := parseDateFlag("date", paidOn)
			if err != nil {
				return err
			}

			status, err := r.app.Dashboard.RecordStatus(amountDue, amountPaid, dueOn, paymentDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "amount due")
	cmd.Flags().StringVar(&paid, "paid", "", "amount paid")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&paidOn, "date", "", "payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("paid")
	_ = cmd.MarkFlagRequired("due-date")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
