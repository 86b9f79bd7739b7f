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

	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/spf13/cobra"
)

func (r *runner) tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}
	cmd.AddCommand(r.tenantAddCmd(), r.tenantRemoveCmd(), r.tenantListCmd(), r.tenantShowCmd())
	return cmd
}

func (r *runner) tenantAddCmd() *cobra.Command {
	var unit, name, phone, start, rent, frequency, propertyType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant to a vacant unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			amount, err := parseAmountFlag("rent", rent)
			if err != nil {
				return err
			}
			freq, err := tenant.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			t, err := r.app.Tenants.AddTenant(cmd.Context(), tenant.AddTenantInput{
				Unit:         unit,
				Name:         name,
				Phone:        phone,
				StartDate:    startDate,
				Rent:         amount,
				Frequency:    freq,
				PropertyType: tenant.PropertyType(propertyType),
				Actor:        r.operator,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added tenant %s in unit %s\n", t.ID, t.Unit)
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "unit identifier")
	cmd.Flags().StringVar(&name, "name", "", "tenant name")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&start, "start", "", "lease start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rent, "rent", "", "rent per period")
	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "monthly, quarterly, semi_annual or annual")
	cmd.Flags().StringVar(&propertyType, "property-type", string(tenant.PropertyResidential), "residential or commercial")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("rent")

	return cmd
}

func (r *runner) tenantRemoveCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "remove <tenant-id>",
		Short: "End a lease. Payment history is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}
			t, err := r.app.Tenants.RemoveTenant(cmd.Context(), args[0], endDate, r.operator)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed tenant %s from unit %s on %s\n", t.ID, t.Unit, formatDate(t.EndDate))
			return nil
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "lease end date (YYYY-MM-DD), defaults to today")
	return cmd
}

func (r *runner) tenantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenants, err := r.app.Tenants.ListActive(cmd.Context())
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tUNIT\tNAME\tPHONE\tSTART\tRENT\tFREQUENCY\tTYPE")
			for _, t := range tenants {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Unit, t.Name, t.Phone, formatDate(&t.StartDate),
					t.Rent.StringFixed(2), t.Frequency, t.PropertyType)
			}
			return w.Flush()
		},
	}
}

func (r *runner) tenantShowCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "show <tenant-id>",
		Short: "Show the billing schedule and payments of a tenant",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s), unit %s, as of %s\n", d.Tenant.Name, d.Tenant.Phone, d.Tenant.Unit, formatDate(&d.AsOf))
			fmt.Fprintf(out, "expected %s  paid %s  balance %s  status %s  next due %s\n\n",
				d.Aggregate.Expected.StringFixed(2), d.Aggregate.Paid.StringFixed(2),
				d.Aggregate.Balance.StringFixed(2), d.Aggregate.Status.Label(), formatDate(&d.Aggregate.NextDue))

			w := newTable(out)
			fmt.Fprintln(w, "DUE\tAMOUNT\tAPPLIED\tOUTSTANDING")
			for _, a := range d.Allocations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatDate(&a.DueDate),
					a.Due.StringFixed(2), a.Applied.StringFixed(2), a.Outstanding.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if d.Credit.IsPositive() {
				fmt.Fprintf(out, "credit %s\n", d.Credit.StringFixed(2))
			}

			fmt.Fprintln(out)
			return writePayments(out, d.Payments)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluation date (YYYY-MM-DD), defaults to today")
	return cmd
}
