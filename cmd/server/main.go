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


package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentrack/rentrack/internal/audit"
	"github.com/rentrack/rentrack/internal/billing"
	"github.com/rentrack/rentrack/internal/config"
	"github.com/rentrack/rentrack/internal/dashboard"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"github.com/rentrack/rentrack/internal/observability/metrics"
	"github.com/rentrack/rentrack/internal/observability/tracing"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/store"
	"github.com/rentrack/rentrack/internal/tenant"
	transportHTTP "github.com/rentrack/rentrack/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
		OTel:        cfg.Observability.OTELEnabled,
	})
	slog.Info("starting rentrack server", logger.Driver(cfg.Store.Driver))

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Initialize context
	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
		os.Exit(1)
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	meter, err := metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
		os.Exit(1)
	}
	instruments, err := metrics.NewInstruments(meter)
	if err != nil {
		slog.Error("failed to register instruments", logger.Error(err))
		os.Exit(1)
	}

	// Initialize store
	st, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("connected to store", logger.Driver(st.Driver()))

	// The embedded SQL migrations for postgres are applied explicitly with
	// the migrate subcommand. The gorm stores create their tables here.
	if st.Driver() != config.DriverPostgres {
		if err := st.Migrate(ctx); err != nil {
			slog.Error("failed to migrate store", logger.Error(err))
			os.Exit(1)
		}
	}

	// Initialize services
	auditLogger := audit.NewSlogLogger()
	engine := billing.NewEngine(cfg.Billing.DueSoonWindow)

	tenantService := tenant.NewService(st.Tenants, auditLogger)
	paymentService := payment.NewService(st.Payments, st.Tenants, auditLogger, instruments.PaymentsRecorded)
	dashboardService := dashboard.NewService(
		st.Tenants,
		st.Payments,
		engine,
		tracer.GetTracer(),
		instruments.StatusComputed,
	)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(
		tenantService,
		paymentService,
		dashboardService,
		transportHTTP.HandlerConfig{
			ServiceName:     cfg.Observability.ServiceName,
			RequestTimeout:  cfg.Server.RequestTimeout,
			RequestDuration: instruments.RequestDuration,
		},
	)

	// Create router
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Migrating %s store...\n", st.Driver())
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	fmt.Println("Migration successful.")
	return nil
}
