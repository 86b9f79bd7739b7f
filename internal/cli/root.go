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

// Package cli implements the rentctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/rentrack/rentrack/internal/billing"
	"github.com/rentrack/rentrack/internal/config"
	"github.com/rentrack/rentrack/internal/dashboard"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"github.com/rentrack/rentrack/internal/observability/metrics"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/store"
	"github.com/rentrack/rentrack/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

// App holds the services a command runs against.
type App struct {
	Tenants   *tenant.Service
	Payments  *payment.Service
	Dashboard *dashboard.Service
	close     func()
}

// NewApp builds the services on top of an opened store.
func NewApp(ctx context.Context, st *store.Store, dueSoonWindow time.Duration) (*App, error) {
	meter, err := metrics.New(ctx, metrics.Config{Enabled: false}, "rentctl")
	if err != nil {
		return nil, err
	}
	instruments, err := metrics.NewInstruments(meter)
	if err != nil {
		return nil, err
	}

	auditLogger := audit.NewSlogLogger()
	return &App{
		Tenants:  tenant.NewService(st.Tenants, auditLogger),
		Payments: payment.NewService(st.Payments, st.Tenants, auditLogger, instruments.PaymentsRecorded),
		Dashboard: dashboard.NewService(
			st.Tenants,
			st.Payments,
			billing.NewEngine(dueSoonWindow),
			otel.Tracer("rentctl"),
			instruments.StatusComputed,
		),
		close: st.Close,
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// Opener creates the App once flags are parsed.
type Opener func(ctx context.Context) (*App, error)

// OpenFromEnv loads configuration from the environment, sends logs to stderr
// and opens the configured store. The gorm stores are migrated on open.
func OpenFromEnv(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "rentctl",
		Output:      os.Stderr,
	})

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if st.Driver() != config.DriverPostgres {
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
	}

	app, err := NewApp(ctx, st, cfg.Billing.DueSoonWindow)
	if err != nil {
		st.Close()
		return nil, err
	}
	return app, nil
}

type runner struct {
	open     Opener
	app      *App
	operator string
}

// NewRootCmd returns the rentctl command tree. The App is opened before any
// subcommand runs and closed after it returns.
func NewRootCmd(open Opener) *cobra.Command {
	r := &runner{open: open}

	rootCmd := &cobra.Command{
		Use:           "rentctl",
		Short:         "Track tenants, rent payments and balances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			r.app = app
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if r.app != nil {
				r.app.Close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&r.operator, "operator", os.Getenv("USER"), "name recorded in the audit log")

	rootCmd.AddCommand(
		r.tenantCmd(),
		r.paymentCmd(),
		r.summaryCmd(),
		r.statusCmd(),
	)
	return rootCmd
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a date formatted YYYY-MM-DD", name)
	}
	return t, nil
}

func parseOptionalDateFlag(name, value string) (*time.Time, error) {
	t, err := parseDateFlag(name, value)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

func parseAmountFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s must be a decimal amount", name)
	}
	return d, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}
