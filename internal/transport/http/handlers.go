// @title Rentrack API
// @version 0.1.0
// @description Rent tracking: tenants, payments, balances and payment status
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rentrack/rentrack/internal/billing"
	"github.com/rentrack/rentrack/internal/dashboard"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"github.com/rentrack/rentrack/internal/payment"
	"github.com/rentrack/rentrack/internal/tenant"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	tenantService    *tenant.Service
	paymentService   *payment.Service
	dashboardService *dashboard.Service
	config           HandlerConfig
}

// HandlerConfig holds transport settings
type HandlerConfig struct {
	ServiceName    string
	RequestTimeout time.Duration
	// RequestDuration is optional; nil disables latency recording.
	RequestDuration metric.Float64Histogram
}

// NewHandler creates a new HTTP handler
func NewHandler(
	tenantService *tenant.Service,
	paymentService *payment.Service,
	dashboardService *dashboard.Service,
	config HandlerConfig,
) *Handler {
	if config.ServiceName == "" {
		config.ServiceName = "rentrack"
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 60 * time.Second
	}
	return &Handler{
		tenantService:    tenantService,
		paymentService:   paymentService,
		dashboardService: dashboardService,
		config:           config,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware(h.config.RequestDuration))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.config.RequestTimeout))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(OperatorMiddleware)

		r.Get("/dashboard/summary", h.GetSummary)
		r.Post("/status/record", h.EvaluateRecordStatus)

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.ListTenants)
			r.Post("/", h.CreateTenant)

			r.Route("/{tenantID}", func(r chi.Router) {
				r.Get("/", h.GetTenant)
				r.Delete("/", h.RemoveTenant)
				r.Get("/payments", h.ListPayments)
				r.Post("/payments", h.RecordPayment)
			})
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Description Checks if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.config.ServiceName,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps domain errors to status codes. Anything unknown is
// logged and reported as a 500 without its message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
		respondError(w, status, "internal server error")
		return
	}
	respondError(w, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, tenant.ErrUnitOccupied),
		errors.Is(err, tenant.ErrTenantInactive):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tenant.ErrInvalidTenant),
		errors.Is(err, tenant.ErrInvalidFrequency),
		errors.Is(err, tenant.ErrInvalidEndDate),
		errors.Is(err, payment.ErrInvalidPayment),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, billing.ErrInvalidSchedule),
		errors.Is(err, billing.ErrNegativeAmount),
		errors.Is(err, billing.ErrUnknownPolicy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
