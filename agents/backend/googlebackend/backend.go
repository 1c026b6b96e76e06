/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googlebackend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/evalkit/agents/backend"
	"chainguard.dev/evalkit/agents/metrics"
	"chainguard.dev/evalkit/agents/schema"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Models is the subset of *genai.Models used by the backend.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type gemini struct {
	models            Models
	maxOutputTokens   int32
	systemInstruction string
	metrics           *metrics.GenAI
}

var _ backend.Interface = (*gemini)(nil)

// New creates a backend from a genai client.
func New(client *genai.Client, opts ...Option) (backend.Interface, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	return NewFromModels(client.Models, opts...)
}

// NewFromModels creates a backend from anything that can generate content.
func NewFromModels(models Models, opts ...Option) (backend.Interface, error) {
	if models == nil {
		return nil, errors.New("models is required")
	}
	b := &gemini{
		models:          models,
		maxOutputTokens: 8192,
		metrics:         metrics.NewGenAI("chainguard.ai.evalkit"),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return b, nil
}

// Generate implements backend.Interface.
func (b *gemini) Generate(ctx context.Context, model, prompt string, opts backend.Options) (*backend.Response, error) {
	if !strings.HasPrefix(model, "gemini-") {
		return nil, fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
	}
	log := clog.FromContext(ctx).With("model", model)

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(opts.Temperature),
		MaxOutputTokens: b.maxOutputTokens,
	}
	if b.systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: b.systemInstruction}},
		}
	}
	if opts.ResponseSchema != nil {
		s, err := schema.ToGenAI(opts.ResponseSchema)
		if err != nil {
			return nil, fmt.Errorf("converting response schema: %w", err)
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = s
	}

	log.With("prompt_length", len(prompt)).Info("Sending generation request")
	resp, err := b.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generating content with model %q: %w", model, err)
	}
	if resp == nil {
		return nil, errors.New("no response from model")
	}

	out := &backend.Response{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		out.PromptTokens = int64(resp.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
		b.metrics.RecordTokens(ctx, model, out.PromptTokens, out.CompletionTokens)
	}

	if out.Text == "" {
		reason := "no candidates"
		if len(resp.Candidates) > 0 {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return nil, fmt.Errorf("no text content in response: %s", reason)
	}

	log.With("response_length", len(out.Text)).Info("Received generation response")
	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}
