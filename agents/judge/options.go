/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"errors"
	"fmt"

	"chainguard.dev/evalkit/agents/metrics"
	"chainguard.dev/evalkit/agents/score"
)

// Option is a functional option for configuring a judge.
type Option func(*judge) error

// WithModel sets the model used for judging.
func WithModel(model string) Option {
	return func(j *judge) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		j.model = model
		return nil
	}
}

// WithTemperature sets the judging temperature, between 0.0 and 1.0.
func WithTemperature(temperature float32) Option {
	return func(j *judge) error {
		if temperature < 0.0 || temperature > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temperature)
		}
		j.temperature = temperature
		return nil
	}
}

// WithExtractor replaces the score parser.
func WithExtractor(e *score.Extractor) Option {
	return func(j *judge) error {
		if e == nil {
			return errors.New("extractor cannot be nil")
		}
		j.extractor = e
		return nil
	}
}

// WithMetrics records scores and failures to m.
func WithMetrics(m *metrics.GenAI) Option {
	return func(j *judge) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		j.metrics = m
		return nil
	}
}
