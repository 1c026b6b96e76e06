/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry instruments for generation and
// judging. Instruments that fail to register fall back to no-ops.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI records token usage, judge scores and failed calls.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	scores           metric.Int64Histogram
	failures         metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates instruments on the global meter provider.
func NewGenAI(meterName string) *GenAI {
	return NewGenAIWithProvider(otel.GetMeterProvider(), meterName)
}

// NewGenAIWithProvider creates instruments on the given meter provider.
func NewGenAIWithProvider(provider metric.MeterProvider, meterName string) *GenAI {
	meter := provider.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	scores, err := meter.Int64Histogram("genai.judge.score",
		metric.WithDescription("Scores extracted from judge feedback"),
		metric.WithUnit("{score}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	if err != nil {
		slog.Warn("Failed to create score histogram, metrics will be disabled", "error", err, "meter", meterName)
		scores = noop.Int64Histogram{}
	}

	failures, err := meter.Int64Counter("genai.failures",
		metric.WithDescription("The number of generation or judge calls that failed"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create failure counter, metrics will be disabled", "error", err, "meter", meterName)
		failures = noop.Int64Counter{}
	}

	return &GenAI{
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		scores:           scores,
		failures:         failures,
	}
}

// SetAttributeEnricher sets the enricher consulted before each recording.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, extra []attribute.KeyValue) metric.MeasurementOption {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return metric.WithAttributes(append(base, extra...)...)
}

// RecordTokens records prompt and completion token usage for model.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{attribute.String("model", model)}, attrs)
	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordScore records one extracted score for criterion.
func (m *GenAI) RecordScore(ctx context.Context, model, criterion string, value int, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("criterion", criterion),
	}, attrs)
	m.scores.Record(ctx, int64(value), opt)
}

// RecordFailure counts a failed call made by component.
func (m *GenAI) RecordFailure(ctx context.Context, component, model string, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("component", component),
		attribute.String("model", model),
	}, attrs)
	m.failures.Add(ctx, 1, opt)
}
