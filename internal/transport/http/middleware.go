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
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rentrack/rentrack/internal/observability/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OperatorHeader names the person acting on the API. It is recorded as the
// audit actor and is not an authentication mechanism.
const OperatorHeader = "X-Operator"

const maxOperatorLen = 128

func LoggingMiddleware(duration metric.Float64Histogram) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Log request start
			slog.DebugContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				elapsed := time.Since(start)
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.StatusCode(ww.Status()),
					logger.Duration(elapsed.Milliseconds()),
				)
				if duration != nil {
					duration.Record(r.Context(), float64(elapsed.Microseconds())/1000,
						metric.WithAttributes(
							attribute.String("http.method", r.Method),
							attribute.Int("http.status_code", ww.Status()),
						),
					)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// OperatorMiddleware copies the X-Operator header into the request context
func OperatorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator := strings.TrimSpace(r.Header.Get(OperatorHeader))
		if len(operator) > maxOperatorLen {
			respondError(w, http.StatusBadRequest, OperatorHeader+" header is too long")
			return
		}
		if operator != "" {
			slog.DebugContext(r.Context(), "operator identified", logger.Operator(operator))
			r = r.WithContext(withOperator(r.Context(), operator))
		}
		next.ServeHTTP(w, r)
	})
}
