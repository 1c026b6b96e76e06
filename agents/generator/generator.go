/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"chainguard.dev/evalkit/agents/backend"
	"chainguard.dev/evalkit/agents/metrics"
	"chainguard.dev/evalkit/agents/result"
	"chainguard.dev/evalkit/agents/schema"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Provider identifies a generation service.
type Provider string

// Gemini is the Google Gemini provider.
const Gemini Provider = "gemini"

// ErrorPrefix starts every soft error returned by Generate.
const ErrorPrefix = "Error"

// IsError reports whether text is a soft error from Generate.
func IsError(text string) bool {
	return strings.HasPrefix(text, ErrorPrefix+":") || strings.HasPrefix(text, ErrorPrefix+" during")
}

// Request describes one generation.
type Request struct {
	Prompt      string
	Provider    Provider
	Model       string
	Temperature float32

	// Schema optionally constrains the output to JSON matching this schema.
	// It may contain $defs and $ref; it is flattened before use.
	Schema map[string]any
}

// Generator dispatches requests to registered backends.
type Generator struct {
	backends map[Provider]backend.Interface
	dialect  schema.Dialect
	metrics  *metrics.GenAI
	tracer   trace.Tracer
}

// Option is a functional option for configuring a Generator.
type Option func(*Generator) error

// WithBackend registers b as the implementation of p.
func WithBackend(p Provider, b backend.Interface) Option {
	return func(g *Generator) error {
		if p == "" {
			return errors.New("provider cannot be empty")
		}
		if b == nil {
			return fmt.Errorf("backend for provider %q cannot be nil", p)
		}
		if _, ok := g.backends[p]; ok {
			return fmt.Errorf("provider %q already registered", p)
		}
		g.backends[p] = b
		return nil
	}
}

// WithDialect sets the schema dialect used to flatten Request.Schema.
func WithDialect(d schema.Dialect) Option {
	return func(g *Generator) error {
		g.dialect = d
		return nil
	}
}

// WithMetrics records failures to m.
func WithMetrics(m *metrics.GenAI) Option {
	return func(g *Generator) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		g.metrics = m
		return nil
	}
}

// New creates a Generator.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		backends: map[Provider]backend.Interface{},
		dialect:  schema.Gemini,
		metrics:  metrics.NewGenAI("chainguard.ai.evalkit"),
		tracer:   otel.Tracer("chainguard.dev/evalkit/agents/generator"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return g, nil
}

// Providers returns the registered providers in sorted order.
func (g *Generator) Providers() []Provider {
	return slices.Sorted(maps.Keys(g.backends))
}

// Generate runs req and returns the generated text, or a soft error string.
func (g *Generator) Generate(ctx context.Context, req Request) string {
	ctx, span := g.tracer.Start(ctx, "generator.generate", trace.WithAttributes(
		attribute.String("generator.provider", string(req.Provider)),
		attribute.String("generator.model", req.Model),
	))
	defer span.End()
	log := clog.FromContext(ctx).With("provider", req.Provider).With("model", req.Model)

	b, ok := g.backends[req.Provider]
	if !ok {
		log.Warn("Unsupported provider requested")
		span.SetStatus(codes.Error, "unsupported provider")
		return fmt.Sprintf("%s: Unsupported provider '%s'", ErrorPrefix, req.Provider)
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		span.SetStatus(codes.Error, "invalid temperature")
		return fmt.Sprintf("%s: temperature must be between 0.0 and 1.0, got %g", ErrorPrefix, req.Temperature)
	}

	opts := backend.Options{Temperature: req.Temperature}
	if req.Schema != nil {
		opts.ResponseSchema = g.dialect.Flatten(req.Schema)
	}

	resp, err := b.Generate(ctx, req.Model, req.Prompt, opts)
	if err == nil && resp == nil {
		err = errors.New("no response from model")
	}
	if err != nil {
		log.With("error", err).Warn("Generation failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.metrics.RecordFailure(ctx, "generator", req.Model)
		return fmt.Sprintf("%s during generation: %v", ErrorPrefix, err)
	}

	if req.Schema != nil && resp.Text != "" {
		if obj, ok := result.ExtractObject(resp.Text); ok {
			return obj
		}
		log.Debug("Structured response held no JSON object, returning raw text")
	}
	return resp.Text
}
