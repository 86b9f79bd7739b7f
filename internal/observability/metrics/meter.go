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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter wraps OpenTelemetry meter
type Meter struct {
	meter metric.Meter
}

// New creates a new meter instance
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	if !cfg.Enabled {
		return &Meter{
			meter: otel.Meter("noop"),
		}, nil
	}

	// Get meter from global meter provider
	// In production, configure a proper meter provider with exporters
	meter := otel.Meter(serviceName)

	return &Meter{
		meter: meter,
	}, nil
}

// GetMeter returns the underlying meter
func (m *Meter) GetMeter() metric.Meter {
	return m.meter
}

// CreateCounter creates a new counter metric
func (m *Meter) CreateCounter(name, description string) (metric.Int64Counter, error) {
	counter, err := m.meter.Int64Counter(
		name,
		metric.WithDescription(description),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return counter, nil
}

// CreateHistogram creates a new histogram metric
func (m *Meter) CreateHistogram(name, description, unit string) (metric.Float64Histogram, error) {
	histogram, err := m.meter.Float64Histogram(
		name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", name, err)
	}
	return histogram, nil
}

// Instrument names exported by rentrack.
const (
	PaymentsRecordedName = "rentrack.payments.recorded"
	StatusComputedName   = "rentrack.status.computed"
	RequestDurationName  = "rentrack.http.request.duration"
)

// Instruments bundles every instrument the application records to.
type Instruments struct {
	PaymentsRecorded metric.Int64Counter
	StatusComputed   metric.Int64Counter
	RequestDuration  metric.Float64Histogram
}

// NewInstruments registers the application instruments on m.
func NewInstruments(m *Meter) (*Instruments, error) {
	recorded, err := m.CreateCounter(PaymentsRecordedName, "Payments recorded, by method")
	if err != nil {
		return nil, err
	}
	computed, err := m.CreateCounter(StatusComputedName, "Tenant statuses computed, by policy and status")
	if err != nil {
		return nil, err
	}
	duration, err := m.CreateHistogram(RequestDurationName, "HTTP request latency", "ms")
	if err != nil {
		return nil, err
	}
	return &Instruments{
		PaymentsRecorded: recorded,
		StatusComputed:   computed,
		RequestDuration:  duration,
	}, nil
}
