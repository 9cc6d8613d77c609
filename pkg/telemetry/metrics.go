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

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

const (
	AttrResult    = "pricecart_result"
	AttrOperation = "pricecart_operation"
)

// attribute values for AttrResult on search counters
const (
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultShortcut = "shortcircuit"
	ResultError    = "error"
)

// Metrics is the domain metric bundle recorded by the search cache and the
// basket store. A nil *Metrics is safe to record on.
type Metrics struct {
	searches        otelmetric.Int64Counter
	searchLatency   otelmetric.Float64Histogram
	basketMutations otelmetric.Int64Counter
}

func NewMetrics() (*Metrics, error) {
	meter := Meter()

	searches, err := meter.Int64Counter(
		"pricecart_searches_total",
		otelmetric.WithDescription("Search calls by result: hit, miss, shortcircuit or error"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		"pricecart_search_duration_seconds",
		otelmetric.WithDescription("Wall time of search calls that reached the backend"),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search latency histogram: %w", err)
	}

	mutations, err := meter.Int64Counter(
		"pricecart_basket_mutations_total",
		otelmetric.WithDescription("Basket mutations by operation: add, update, remove or clear"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create basket mutation counter: %w", err)
	}

	return &Metrics{
		searches:        searches,
		searchLatency:   latency,
		basketMutations: mutations,
	}, nil
}

func (m *Metrics) RecordSearch(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.searches.Add(ctx, 1, otelmetric.WithAttributes(attribute.String(AttrResult, result)))
}

func (m *Metrics) RecordSearchLatency(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.searchLatency.Record(ctx, seconds)
}

func (m *Metrics) RecordBasketMutation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.basketMutations.Add(ctx, 1, otelmetric.WithAttributes(attribute.String(AttrOperation, operation)))
}
