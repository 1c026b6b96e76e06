/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chainguard.dev/evalkit/agents/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	return func() time.Time { return t }
}

func TestLogWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.csv")
	s := New(path, WithClock(fixedClock()))

	for range 2 {
		require.NoError(t, s.Log(ctx, Record{Model: "gemini-2.5-flash", Question: "q", Answer: "a"}), "Log")
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-03-14 09:26:53,,item,gemini-2.5-flash,"), lines[1])
}

func TestLogEmptyFileGetsHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := New(path, WithClock(fixedClock()))
	require.NoError(t, s.Log(ctx, Record{Model: "m"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "timestamp,batch_id,"))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "history.csv"), WithClock(fixedClock()))

	scores := score.NewSet(score.Criteria...)
	scores[score.Total] = intp(8)
	scores[score.Relevance] = intp(9)

	want := Record{
		BatchID:          "b-1",
		Model:            "gemini-2.5-flash",
		Temperature:      0.7,
		Question:         "Prompt Type: emt\nInput Data:\n{}",
		Answer:           `{"content": "multi, line\n\"quoted\""}`,
		JudgeFeedback:    "Total rating: 8/10",
		JudgePrompt:      "judge this",
		ValidationStatus: "Valid",
		Scores:           scores,
	}
	require.NoError(t, s.Log(ctx, want))

	got, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.True(t, fixedClock()().Equal(r.Timestamp), "timestamp = %v", r.Timestamp)
	assert.Equal(t, ItemRow, r.RowType)
	assert.Equal(t, want.Answer, r.Answer)
	assert.Equal(t, want.Question, r.Question)
	assert.InDelta(t, 0.7, r.Temperature, 1e-6)
	assert.Equal(t, "8/10", r.Scores.Format(score.Total))
	assert.Equal(t, "9/10", r.Scores.Format(score.Relevance))
	assert.False(t, r.Scores.Has(score.Clarity))
	assert.False(t, r.Scores.Has(score.Creativity))
}

func TestLogBatchSummary(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "history.csv"), WithClock(fixedClock()))

	scores := score.NewSet(score.Criteria...)
	scores[score.Total] = intp(3)
	scores[score.Consistency] = intp(7)
	scores[score.Creativity] = intp(6)

	require.NoError(t, s.LogBatchSummary(ctx, "b-2", "gemini-2.5-pro", 0.2, "feedback", "prompt", scores))

	got, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, BatchSummaryRow, got[0].RowType)
	assert.Equal(t, "b-2", got[0].BatchID)
	assert.False(t, got[0].Scores.Has(score.Total), "summary rows carry batch scores only")
	assert.Equal(t, "7/10", got[0].Scores.Format(score.Consistency))
	assert.Equal(t, "6/10", got[0].Scores.Format(score.Creativity))
}

func TestHistoryMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.csv"))
	got, err := s.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLegacyHeaderIsUpgraded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.csv")
	legacy := "timestamp,model,question,answer,total_rating(1-10),validation_status\n" +
		"2024-12-01 10:00:00,gemini-1.5-pro,q,a,7.0,Valid\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s := New(path, WithClock(fixedClock()))
	old, err := s.History(ctx)
	require.NoError(t, err, "legacy files load by column name")
	require.Len(t, old, 1)
	assert.Equal(t, "7/10", old[0].Scores.Format(score.Total))
	assert.Equal(t, "N/A", old[0].Scores.Format(score.Relevance))

	require.NoError(t, s.Log(ctx, Record{Model: "gemini-2.5-flash"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])

	all, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "gemini-1.5-pro", all[0].Model)
	assert.Equal(t, "gemini-2.5-flash", all[1].Model)
}

func TestHistoryToleratesBadCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "timestamp,model,relevance_score,clarity_score\n" +
		"2025-03-14 09:26:53,a,high,7\n" +
		"yesterday,b,5,5\n" +
		"2025-03-14 09:27:00,c,8.5,9.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := New(path).History(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2, "row with an unreadable timestamp is skipped")

	assert.Equal(t, "a", recs[0].Model)
	_, ok := recs[0].Scores.Get(score.Relevance)
	assert.False(t, ok, "non-numeric score loads as absent")
	assert.Equal(t, intp(7), recs[0].Scores[score.Clarity])

	assert.Equal(t, "c", recs[1].Model)
	_, ok = recs[1].Scores.Get(score.Relevance)
	assert.False(t, ok, "fractional score loads as absent")
	assert.Equal(t, intp(9), recs[1].Scores[score.Clarity])
}

func TestReadTableShortRows(t *testing.T) {
	header, rows, err := ReadTable(strings.NewReader("type,input,extra\nemt,{}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"type", "input", "extra"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"type": "emt", "input": "{}", "extra": ""}, rows[0])
}
