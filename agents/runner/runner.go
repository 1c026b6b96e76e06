/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/evalkit/agents/generator"
	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/judge"
	"chainguard.dev/evalkit/agents/prompts"
	"chainguard.dev/evalkit/agents/score"
	"chainguard.dev/evalkit/agents/validate"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
)

// Generator produces an answer for a prompt. Failures are reported in-band
// as soft error text.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) string
}

// Input is one row of batch input.
type Input struct {
	Kind prompts.Kind
	// Raw is the JSON input document as given.
	Raw string
}

// ItemResult is the outcome of evaluating one input.
type ItemResult struct {
	Kind             prompts.Kind
	Input            string
	Prompt           string
	Question         string
	Answer           string
	ValidationStatus string
	Judge            *judge.Result
	GeneratorModel   string
	JudgeModel       string

	// Err is set when the row could not be evaluated.
	Err error
}

// Failed reports whether the row could not be evaluated.
func (r *ItemResult) Failed() bool {
	return r.Err != nil
}

// BatchResult is the outcome of a batch run.
type BatchResult struct {
	ID    string
	Items []*ItemResult
	// Judge holds the batch-level consistency and creativity scores.
	Judge *judge.Result
}

// Runner evaluates inputs end to end.
type Runner struct {
	gen     Generator
	judge   judge.Interface
	store   *history.Store
	catalog *prompts.Catalog

	provider    generator.Provider
	model       string
	temperature float32
	judgeModel  string

	pause time.Duration
	sleep func(context.Context, time.Duration) error
	newID func() string
}

// New creates a Runner. The history store is required.
func New(gen Generator, j judge.Interface, store *history.Store, opts ...Option) (*Runner, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if j == nil {
		return nil, errors.New("judge is required")
	}
	if store == nil {
		return nil, errors.New("history store is required")
	}
	r := &Runner{
		gen:         gen,
		judge:       j,
		store:       store,
		catalog:     prompts.DefaultCatalog,
		provider:    generator.Gemini,
		model:       "gemini-2.5-flash",
		temperature: 0.5,
		judgeModel:  "gemini-2.5-flash",
		pause:       time.Second,
		sleep:       sleep,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return r, nil
}

// RunOne evaluates a single input with the individual rubric and logs an item row.
// Malformed input and logging failures are returned as errors.
func (r *Runner) RunOne(ctx context.Context, kind prompts.Kind, raw []byte) (*ItemResult, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	prompt, err := r.catalog.Build(kind, string(r.provider), raw)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	item := r.newItem(kind, string(raw), prompt)
	item.Answer = r.generate(ctx, prompt)
	item.ValidationStatus = validate.Status(validate.Answer(item.Answer))
	item.Question = question(kind, pretty.String())
	item.Judge = r.judge.Evaluate(ctx, item.Question, item.Answer, judge.IndividualMode)

	if err := r.log(ctx, "", item); err != nil {
		return item, err
	}
	return item, nil
}

// RunBatch evaluates every input, then scores the batch as a whole.
// Only context cancellation aborts the run.
func (r *Runner) RunBatch(ctx context.Context, inputs []Input) (*BatchResult, error) {
	res := &BatchResult{ID: r.newID()}
	log := clog.FromContext(ctx).With("batch_id", res.ID)
	log.With("rows", len(inputs)).Info("Starting batch evaluation")

	var pairs []judge.Pair
	for i, in := range inputs {
		item, err := r.runItem(ctx, res.ID, in)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			log.With("row", i+1).With("error", err.Error()).Error("Batch row failed")
			item.Err = err
			item.Answer = fmt.Sprintf("ERROR: %v", err)
			item.ValidationStatus = validate.StatusError
			item.Judge = nil
		} else {
			pairs = append(pairs, judge.Pair{Input: in.Raw, Answer: item.Answer})
		}
		res.Items = append(res.Items, item)
	}

	res.Judge = r.judge.EvaluateBatch(ctx, pairs)
	if res.Judge.Failed() {
		log.With("feedback", res.Judge.Feedback).Warn("Batch-level evaluation failed")
	}
	if err := r.store.LogBatchSummary(ctx, res.ID, r.model, r.temperature, res.Judge.Feedback, res.Judge.Prompt, res.Judge.Scores); err != nil {
		log.With("error", err.Error()).Warn("Failed to log batch summary")
	}

	log.With("pairs", len(pairs)).Info("Finished batch evaluation")
	return res, nil
}

func (r *Runner) runItem(ctx context.Context, batchID string, in Input) (*ItemResult, error) {
	item := r.newItem(in.Kind, in.Raw, "")
	if !json.Valid([]byte(in.Raw)) {
		return item, errors.New("invalid JSON input")
	}
	prompt, err := r.catalog.Build(in.Kind, string(r.provider), []byte(in.Raw))
	if err != nil {
		return item, err
	}
	item.Prompt = prompt

	item.Answer = r.generate(ctx, prompt)
	if err := r.sleep(ctx, r.pause); err != nil {
		return item, err
	}

	item.Question = question(in.Kind, in.Raw)
	item.Judge = r.judge.Evaluate(ctx, item.Question, item.Answer, judge.IndividualMode)
	item.ValidationStatus = validate.Status(validate.Answer(item.Answer))

	if err := r.log(ctx, batchID, item); err != nil {
		return item, err
	}
	return item, nil
}

func (r *Runner) newItem(kind prompts.Kind, input, prompt string) *ItemResult {
	return &ItemResult{
		Kind:           kind,
		Input:          input,
		Prompt:         prompt,
		GeneratorModel: r.model,
		JudgeModel:     r.judgeModel,
	}
}

func (r *Runner) generate(ctx context.Context, prompt string) string {
	answer := r.gen.Generate(ctx, generator.Request{
		Prompt:      prompt,
		Provider:    r.provider,
		Model:       r.model,
		Temperature: r.temperature,
	})
	if generator.IsError(answer) {
		clog.FromContext(ctx).With("model", r.model).With("answer", answer).Warn("Generation returned an error")
	}
	return answer
}

func (r *Runner) log(ctx context.Context, batchID string, item *ItemResult) error {
	rec := history.Record{
		BatchID:          batchID,
		RowType:          history.ItemRow,
		Model:            r.model,
		Temperature:      r.temperature,
		Question:         item.Question,
		Answer:           item.Answer,
		ValidationStatus: item.ValidationStatus,
	}
	if item.Judge != nil {
		rec.JudgeFeedback = item.Judge.Feedback
		rec.JudgePrompt = item.Judge.Prompt
		rec.Scores = score.NewSet(score.Criteria...)
		for _, c := range score.Criteria {
			// Batch-level criteria are scored once per batch.
			if batchID != "" && (c == score.Consistency || c == score.Creativity) {
				continue
			}
			rec.Scores[c] = item.Judge.Scores[c]
		}
	}
	if err := r.store.Log(ctx, rec); err != nil {
		return fmt.Errorf("logging evaluation: %w", err)
	}
	return nil
}

func question(kind prompts.Kind, input string) string {
	return fmt.Sprintf("Prompt Type: %s\nInput Data:\n%s", kind, input)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
