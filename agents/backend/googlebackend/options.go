/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googlebackend

import (
	"errors"
	"fmt"

	"chainguard.dev/evalkit/agents/metrics"
)

// Option is a functional option for configuring a backend.
type Option func(*gemini) error

// WithMaxOutputTokens caps the number of generated tokens.
func WithMaxOutputTokens(tokens int32) Option {
	return func(b *gemini) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		if tokens > 65536 {
			return fmt.Errorf("max output tokens %d exceeds maximum of 65536", tokens)
		}
		b.maxOutputTokens = tokens
		return nil
	}
}

// WithSystemInstruction sets a system instruction sent with every request.
func WithSystemInstruction(text string) Option {
	return func(b *gemini) error {
		if text == "" {
			return errors.New("system instruction cannot be empty")
		}
		b.systemInstruction = text
		return nil
	}
}

// WithMetrics replaces the metrics sink.
func WithMetrics(m *metrics.GenAI) Option {
	return func(b *gemini) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		b.metrics = m
		return nil
	}
}

// WithAttributeEnricher sets an enricher for the metrics recorded by this backend.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(b *gemini) error {
		b.metrics.SetAttributeEnricher(enricher)
		return nil
	}
}
