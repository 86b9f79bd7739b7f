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

package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	transportHTTP "github.com/rentrack/rentrack/internal/transport/http"
)

func TestRouter_Routes(t *testing.T) {
	// Route matching only; handlers are never executed.
	h := transportHTTP.NewHandler(nil, nil, nil, transportHTTP.HandlerConfig{})
	rl := transportHTTP.NewRateLimiter(100, 100)
	defer rl.Stop()
	r := transportHTTP.NewRouter(h, rl)

	tests := []struct {
		method      string
		path        string
		expectFound bool
	}{
		{"GET", "/health", true},
		{"GET", "/api/v1/dashboard/summary", true},
		{"POST", "/api/v1/status/record", true},
		{"GET", "/api/v1/tenants", true},
		{"POST", "/api/v1/tenants", true},
		{"GET", "/api/v1/tenants/t-1", true},
		{"DELETE", "/api/v1/tenants/t-1", true},
		{"GET", "/api/v1/tenants/t-1/payments", true},
		{"POST", "/api/v1/tenants/t-1/payments", true},
		{"PUT", "/api/v1/tenants/t-1", false},
		{"DELETE", "/api/v1/tenants/t-1/payments", false},
		{"POST", "/api/v1/auth/login", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)

			rctx := chi.NewRouteContext()
			found := r.Match(rctx, req.Method, req.URL.Path)
			if found != tt.expectFound {
				t.Errorf("route %s %s: found=%v, want %v", tt.method, tt.path, found, tt.expectFound)
			}
		})
	}
}
