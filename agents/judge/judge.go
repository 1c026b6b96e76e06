/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/evalkit/agents/backend"
	"chainguard.dev/evalkit/agents/metrics"
	"chainguard.dev/evalkit/agents/score"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	pairCriteria  = score.Criteria
	batchCriteria = []score.Criterion{score.Consistency, score.Creativity}
)

type judge struct {
	backend     backend.Interface
	model       string
	temperature float32
	extractor   *score.Extractor
	metrics     *metrics.GenAI
	tracer      trace.Tracer
}

var _ Interface = (*judge)(nil)

// New creates a judge that calls b.
func New(b backend.Interface, opts ...Option) (Interface, error) {
	if b == nil {
		return nil, errors.New("backend is required")
	}
	j := &judge{
		backend:     b,
		model:       "gemini-2.5-flash",
		temperature: 0.5,
		extractor:   score.Default,
		metrics:     metrics.NewGenAI("chainguard.ai.evalkit"),
		tracer:      otel.Tracer("chainguard.dev/evalkit/agents/judge"),
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return j, nil
}

// Evaluate implements Interface.
func (j *judge) Evaluate(ctx context.Context, question, answer string, mode Mode) *Result {
	ctx, span := j.tracer.Start(ctx, "judge.evaluate",
		trace.WithAttributes(attribute.String("judge.mode", string(mode))))
	defer span.End()

	prompt, err := PairPrompt(question, answer, mode)
	if err != nil {
		return j.fail(ctx, span, "evaluation", prompt, pairCriteria, err)
	}
	return j.call(ctx, span, "evaluation", prompt, pairCriteria)
}

// EvaluateBatch implements Interface.
func (j *judge) EvaluateBatch(ctx context.Context, pairs []Pair) *Result {
	ctx, span := j.tracer.Start(ctx, "judge.evaluate_batch",
		trace.WithAttributes(attribute.Int("judge.pairs", len(pairs))))
	defer span.End()

	prompt, err := BatchPrompt(pairs)
	if err != nil {
		return j.fail(ctx, span, "batch evaluation", prompt, batchCriteria, err)
	}
	return j.call(ctx, span, "batch evaluation", prompt, batchCriteria)
}

func (j *judge) call(ctx context.Context, span trace.Span, what, prompt string, criteria []score.Criterion) *Result {
	log := clog.FromContext(ctx).With("model", j.model)

	resp, err := j.backend.Generate(ctx, j.model, prompt, backend.Options{Temperature: j.temperature})
	if err == nil && resp == nil {
		err = errors.New("no response from model")
	}
	if err != nil {
		return j.fail(ctx, span, what, prompt, criteria, err)
	}

	scores := score.NewSet(criteria...)
	for _, c := range criteria {
		v, outcome := j.extractor.Lookup(resp.Text, c)
		switch outcome {
		case score.Found:
			scores[c] = &v
			j.metrics.RecordScore(ctx, j.model, string(c), v)
		case score.OutOfRange:
			log.With("criterion", c).Warn("Judge returned a score outside 1-10, treating as absent")
		}
	}
	span.SetAttributes(attribute.String("judge.scores", scores.String()))
	log.With("scores", scores.String()).Info("Judge evaluation complete")

	return &Result{
		Feedback: resp.Text,
		Scores:   scores,
		Prompt:   prompt,
	}
}

func (j *judge) fail(ctx context.Context, span trace.Span, what, prompt string, criteria []score.Criterion, err error) *Result {
	clog.FromContext(ctx).With("model", j.model).With("error", err).Warn("Judge call failed")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	j.metrics.RecordFailure(ctx, "judge", j.model)

	return &Result{
		Feedback: fmt.Sprintf("%s %s: %v", ErrorPrefix, what, err),
		Scores:   score.NewSet(criteria...),
		Prompt:   prompt,
	}
}
