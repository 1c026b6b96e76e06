/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package backend defines the contract between the evaluation components and
// a text-generation service. Implementations live in subpackages.
package backend

import "context"

// Interface performs a single text-generation request.
type Interface interface {
	// Generate sends prompt to model and returns the generated text.
	Generate(ctx context.Context, model, prompt string, opts Options) (*Response, error)
}

// Options carries per-request generation settings.
type Options struct {
	// Temperature controls sampling randomness.
	Temperature float32

	// ResponseSchema, when non-nil, requests structured JSON output that
	// conforms to this flattened schema tree.
	ResponseSchema map[string]any
}

// Response is the outcome of a successful generation.
type Response struct {
	Text             string
	PromptTokens     int64
	CompletionTokens int64
}

// Func adapts an ordinary function to Interface.
type Func func(ctx context.Context, model, prompt string, opts Options) (*Response, error)

// Generate implements Interface.
func (f Func) Generate(ctx context.Context, model, prompt string, opts Options) (*Response, error) {
	return f(ctx, model, prompt, opts)
}
