/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"errors"
	"fmt"
	"time"

	"chainguard.dev/evalkit/agents/generator"
	"chainguard.dev/evalkit/agents/prompts"
)

// Option is a functional option for configuring a Runner.
type Option func(*Runner) error

// WithGenerator sets the provider, model and temperature used for generation.
func WithGenerator(provider generator.Provider, model string, temperature float32) Option {
	return func(r *Runner) error {
		if provider == "" {
			return errors.New("provider cannot be empty")
		}
		if model == "" {
			return errors.New("model cannot be empty")
		}
		if temperature < 0 || temperature > 1 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %g", temperature)
		}
		r.provider = provider
		r.model = model
		r.temperature = temperature
		return nil
	}
}

// WithJudgeModel records the judge model name in per-item results.
func WithJudgeModel(model string) Option {
	return func(r *Runner) error {
		if model == "" {
			return errors.New("judge model cannot be empty")
		}
		r.judgeModel = model
		return nil
	}
}

// WithPause sets the delay after each batch generation call.
func WithPause(d time.Duration) Option {
	return func(r *Runner) error {
		if d < 0 {
			return fmt.Errorf("pause cannot be negative, got %v", d)
		}
		r.pause = d
		return nil
	}
}

// WithCatalog sets the strategy catalog used to render prompts.
func WithCatalog(c *prompts.Catalog) Option {
	return func(r *Runner) error {
		if c == nil {
			return errors.New("catalog cannot be nil")
		}
		r.catalog = c
		return nil
	}
}
