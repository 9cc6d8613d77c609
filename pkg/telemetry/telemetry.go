/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package telemetry wires the process meter provider. When disabled it
// installs a no-op provider so instrumented code needs no guards.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

const meterName = "pricecart"

var (
	meterProvider *metric.MeterProvider
	initOnce      sync.Once
	shutdownOnce  sync.Once
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is host:port of the OTLP HTTP collector
	OTLPEndpoint string
	Insecure     bool
	Enabled      bool
}

// Init installs the global meter provider. Safe to call once per process;
// subsequent calls are no-ops.
func Init(ctx context.Context, cfg Config) error {
	var initErr error
	initOnce.Do(func() {
		if !cfg.Enabled {
			meterProvider = metric.NewMeterProvider()
			otel.SetMeterProvider(meterProvider)
			return
		}
		if cfg.OTLPEndpoint == "" {
			initErr = fmt.Errorf("OTLP endpoint is required when telemetry is enabled")
			return
		}

		res, err := resource.New(ctx,
			resource.WithAttributes(
				semconv.ServiceName(cfg.ServiceName),
				semconv.ServiceVersion(cfg.ServiceVersion),
			),
		)
		if err != nil {
			initErr = fmt.Errorf("failed to create telemetry resource: %w", err)
			return
		}

		endpoint := strings.TrimPrefix(strings.TrimPrefix(
			strings.TrimSpace(cfg.OTLPEndpoint), "http://"), "https://")
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			initErr = fmt.Errorf("failed to create OTLP metric exporter: %w", err)
			return
		}

		meterProvider = metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(exporter)),
		)
		otel.SetMeterProvider(meterProvider)
	})
	return initErr
}

// Shutdown flushes pending metrics. Called on process exit.
func Shutdown(ctx context.Context) error {
	var shutdownErr error
	shutdownOnce.Do(func() {
		if meterProvider != nil {
			shutdownErr = meterProvider.Shutdown(ctx)
		}
	})
	return shutdownErr
}

// Meter returns the service meter.
func Meter(opts ...otelmetric.MeterOption) otelmetric.Meter {
	return otel.Meter(meterName, opts...)
}
