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

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Event types
const (
	TypeTenantAdded     = "tenant_added"
	TypeTenantRemoved   = "tenant_removed"
	TypePaymentRecorded = "payment_recorded"
)

// Event represents a change made to the record store
type Event struct {
	Type      string
	TenantID  string
	ActorID   string
	Resource  string
	Metadata  map[string]any
	Timestamp time.Time
}

// Logger defines the interface for audit logging
type Logger interface {
	Log(ctx context.Context, event Event)
}

// SlogLogger implements Logger using slog
type SlogLogger struct{}

// NewSlogLogger creates a new audit logger
func NewSlogLogger() *SlogLogger {
	return &SlogLogger{}
}

// Log records an audit event
func (l *SlogLogger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	attrs := []any{
		slog.String("audit_type", event.Type),
		slog.String("tenant_id", event.TenantID),
		slog.String("actor_id", event.ActorID),
		slog.String("resource", event.Resource),
		slog.Time("timestamp", event.Timestamp),
	}

	if len(event.Metadata) > 0 {
		group := []any{}
		for k, v := range event.Metadata {
			if isPersonal(k) {
				v = maskValue(fmt.Sprint(v))
			}
			group = append(group, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("metadata", group...))
	}

	slog.InfoContext(ctx, "AUDIT_EVENT", append(attrs, slog.String("component", "audit"))...)
}

// isPersonal reports whether a metadata key holds tenant contact details
func isPersonal(key string) bool {
	switch key {
	case "phone", "phone_number":
		return true
	}
	return false
}

// maskValue keeps the last four characters
func maskValue(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	masked := make([]byte, len(v))
	for i := range masked {
		if i < len(v)-4 {
			masked[i] = '*'
		} else {
			masked[i] = v[i]
		}
	}
	return string(masked)
}
