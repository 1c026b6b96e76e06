/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"chainguard.dev/evalkit/agents/generator"
	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/judge"
	"chainguard.dev/evalkit/agents/prompts"
	"chainguard.dev/evalkit/agents/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emtInput = `{"scores":{"EMT1":[40,60],"EMT2":[70]},"metadata":{"class_id":"5A","deficient_area":"EMT1","num_students":2}}`

type fakeGenerator struct {
	mu       sync.Mutex
	requests []generator.Request
	answer   string
}

func (f *fakeGenerator) Generate(_ context.Context, req generator.Request) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.answer
}

type fakeJudge struct {
	mu        sync.Mutex
	questions []string
	batches   [][]judge.Pair
	batch     *judge.Result
}

func intp(v int) *int { return &v }

func (f *fakeJudge) Evaluate(_ context.Context, question, answer string, mode judge.Mode) *judge.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, question)
	s := score.NewSet(score.Criteria...)
	s[score.Relevance] = intp(8)
	s[score.Clarity] = intp(7)
	s[score.Consistency] = intp(5)
	return &judge.Result{Feedback: "Relevance Score: 8\nClarity Score: 7", Scores: s, Prompt: "judge: " + answer}
}

func (f *fakeJudge) EvaluateBatch(_ context.Context, pairs []judge.Pair) *judge.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, pairs)
	if f.batch != nil {
		return f.batch
	}
	s := score.NewSet(score.Consistency, score.Creativity)
	s[score.Consistency] = intp(9)
	s[score.Creativity] = intp(6)
	return &judge.Result{Feedback: "Consistency Score: 9\nCreativity Score: 6", Scores: s, Prompt: "batch prompt"}
}

type pauses struct {
	mu    sync.Mutex
	count int
}

func (p *pauses) sleep(_ context.Context, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	return nil
}

func newTestRunner(t *testing.T, gen Generator, j judge.Interface, opts ...Option) (*Runner, *history.Store, *pauses) {
	t.Helper()
	store := history.New(filepath.Join(t.TempDir(), "evaluations.csv"))
	r, err := New(gen, j, store, append([]Option{WithGenerator(generator.Gemini, "gemini-2.5-flash", 0.3)}, opts...)...)
	require.NoError(t, err, "New")
	p := &pauses{}
	r.sleep = p.sleep
	r.newID = func() string { return "batch-1" }
	return r, store, p
}

func TestRunOne(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{answer: `{"intervention": "Use emotion cards"}`}
	j := &fakeJudge{}
	r, store, p := newTestRunner(t, gen, j)

	item, err := r.RunOne(ctx, prompts.EMT, []byte(emtInput))
	require.NoError(t, err)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, generator.Gemini, gen.requests[0].Provider)
	assert.InDelta(t, 0.3, gen.requests[0].Temperature, 1e-6)
	assert.Contains(t, gen.requests[0].Prompt, "50.00%", "EMT1 average")
	assert.Zero(t, p.count, "single evaluations do not pause")

	assert.Equal(t, "Valid", item.ValidationStatus)
	assert.True(t, strings.HasPrefix(item.Question, "Prompt Type: emt\nInput Data:\n{\n  \"scores\""), item.Question)

	recs, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, history.ItemRow, recs[0].RowType)
	assert.Empty(t, recs[0].BatchID)
	assert.Equal(t, "8/10", recs[0].Scores.Format(score.Relevance))
	assert.Equal(t, "5/10", recs[0].Scores.Format(score.Consistency), "single rows keep every judged criterion")
}

func TestRunOneErrors(t *testing.T) {
	r, _, _ := newTestRunner(t, &fakeGenerator{answer: "a"}, &fakeJudge{})

	_, err := r.RunOne(context.Background(), prompts.EMT, []byte("{not json"))
	assert.ErrorContains(t, err, "invalid JSON input")

	_, err = r.RunOne(context.Background(), prompts.Kind("poem"), []byte(`{}`))
	assert.ErrorContains(t, err, "unknown prompt type")
}

func TestRunBatch(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{answer: "Practice naming emotions daily."}
	j := &fakeJudge{}
	r, store, p := newTestRunner(t, gen, j, WithJudgeModel("gemini-2.5-pro"))

	inputs := []Input{
		{Kind: prompts.EMT, Raw: emtInput},
		{Kind: prompts.Kind("poem"), Raw: `{}`},
		{Kind: prompts.CurriculumKind, Raw: `{"grade_level": 3, "skill_areas": ["empathy"], "score": 72.5}`},
		{Kind: prompts.EMT, Raw: `{broken`},
	}
	res, err := r.RunBatch(ctx, inputs)
	require.NoError(t, err)

	assert.Equal(t, "batch-1", res.ID)
	require.Len(t, res.Items, 4)
	assert.False(t, res.Items[0].Failed())
	assert.True(t, res.Items[1].Failed())
	assert.True(t, strings.HasPrefix(res.Items[1].Answer, "ERROR: "), res.Items[1].Answer)
	assert.Equal(t, "Error", res.Items[1].ValidationStatus)
	assert.False(t, res.Items[2].Failed())
	assert.True(t, res.Items[3].Failed())
	assert.Equal(t, "gemini-2.5-pro", res.Items[2].JudgeModel)

	assert.Len(t, gen.requests, 2, "failed rows never reach the generator")
	assert.Equal(t, 2, p.count)
	assert.Equal(t, "Prompt Type: emt\nInput Data:\n"+emtInput, j.questions[0], "batch questions carry the raw input")

	require.Len(t, j.batches, 1, "exactly one batch judge call")
	require.Len(t, j.batches[0], 2)
	assert.Equal(t, emtInput, j.batches[0][0].Input)
	assert.Equal(t, "9/10", res.Judge.Scores.Format(score.Consistency))

	recs, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3, "two items and a summary")
	for _, rec := range recs[:2] {
		assert.Equal(t, history.ItemRow, rec.RowType)
		assert.Equal(t, "batch-1", rec.BatchID)
		_, ok := rec.Scores.Get(score.Consistency)
		assert.False(t, ok, "item rows in a batch leave consistency empty")
		_, ok = rec.Scores.Get(score.Creativity)
		assert.False(t, ok, "item rows in a batch leave creativity empty")
	}
	summary := recs[2]
	assert.Equal(t, history.BatchSummaryRow, summary.RowType)
	assert.Equal(t, "batch prompt", summary.JudgePrompt)
	assert.Equal(t, "6/10", summary.Scores.Format(score.Creativity))
}

func TestRunBatchEmpty(t *testing.T) {
	j := &fakeJudge{}
	r, store, _ := newTestRunner(t, &fakeGenerator{}, j)

	res, err := r.RunBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	require.Len(t, j.batches, 1)
	assert.Empty(t, j.batches[0])

	recs, err := store.History(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, history.BatchSummaryRow, recs[0].RowType)
}

func TestRunBatchFailedBatchJudgeStillLogs(t *testing.T) {
	failed := &judge.Result{
		Feedback: "Error during batch evaluation: boom",
		Scores:   score.NewSet(score.Consistency, score.Creativity),
		Prompt:   "batch prompt",
	}
	r, store, _ := newTestRunner(t, &fakeGenerator{answer: "x"}, &fakeJudge{batch: failed})

	res, err := r.RunBatch(context.Background(), []Input{{Kind: prompts.EMT, Raw: emtInput}})
	require.NoError(t, err)
	assert.True(t, res.Judge.Failed())

	recs, err := store.History(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "N/A", recs[1].Scores.Format(score.Consistency))
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, _, _ := newTestRunner(t, &fakeGenerator{answer: "x"}, &fakeJudge{})
	r.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := r.RunBatch(ctx, []Input{{Kind: prompts.EMT, Raw: emtInput}, {Kind: prompts.EMT, Raw: emtInput}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidation(t *testing.T) {
	store := history.New(filepath.Join(t.TempDir(), "h.csv"))
	tests := []struct {
		name  string
		gen   Generator
		judge judge.Interface
		store *history.Store
		opts  []Option
	}{
		{name: "nil generator", judge: &fakeJudge{}, store: store},
		{name: "nil judge", gen: &fakeGenerator{}, store: store},
		{name: "nil store", gen: &fakeGenerator{}, judge: &fakeJudge{}},
		{name: "bad temperature", gen: &fakeGenerator{}, judge: &fakeJudge{}, store: store,
			opts: []Option{WithGenerator(generator.Gemini, "gemini-2.5-flash", 1.5)}},
		{name: "negative pause", gen: &fakeGenerator{}, judge: &fakeJudge{}, store: store,
			opts: []Option{WithPause(-time.Second)}},
		{name: "nil catalog", gen: &fakeGenerator{}, judge: &fakeJudge{}, store: store,
			opts: []Option{WithCatalog(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.gen, tt.judge, tt.store, tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestReadInputs(t *testing.T) {
	in := "id,type,input\n1,emt,\"{\"\"scores\"\": {}}\"\n2,curriculum,{}\n"
	got, err := ReadInputs(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Input{
		{Kind: prompts.EMT, Raw: `{"scores": {}}`},
		{Kind: prompts.CurriculumKind, Raw: `{}`},
	}, got)

	_, err = ReadInputs(strings.NewReader("type,data\nemt,{}\n"))
	assert.True(t, errors.Is(err, ErrMissingColumns), "got %v", err)
}

func TestWriteResults(t *testing.T) {
	s := score.NewSet(score.Criteria...)
	s[score.Total] = intp(8)
	s[score.Relevance] = intp(9)
	items := []*ItemResult{{
		Kind:             prompts.EMT,
		Input:            emtInput,
		Answer:           "answer, with comma",
		ValidationStatus: "Valid",
		Judge:            &judge.Result{Feedback: "good", Scores: s},
		GeneratorModel:   "gemini-2.5-flash",
		JudgeModel:       "gemini-2.5-pro",
	}, {
		Kind:             prompts.Kind("poem"),
		Input:            "{}",
		Answer:           "ERROR: unknown prompt type",
		ValidationStatus: "Error",
		GeneratorModel:   "gemini-2.5-flash",
		JudgeModel:       "gemini-2.5-pro",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ResultHeader, rows[0])
	assert.Equal(t, []string{"emt", emtInput, "answer, with comma", "good", "8", "9", "", "Valid", "gemini-2.5-flash", "gemini-2.5-pro"}, rows[1])
	assert.Equal(t, "N/A", rows[2][3])
	assert.Equal(t, "", rows[2][4])
}

func TestSleep(t *testing.T) {
	if err := sleep(context.Background(), 0); err != nil {
		t.Errorf("sleep(0) = %v, wanted nil", err)
	}
	if err := sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleep(1ms) = %v, wanted nil", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep(cancelled) = %v, wanted %v", err, context.Canceled)
	}
}
