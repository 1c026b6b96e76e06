/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"slices"
	"strconv"
	"time"

	"chainguard.dev/evalkit/agents/score"
	"github.com/chainguard-dev/clog"
)

// RowType distinguishes per-item rows from batch summaries.
type RowType string

const (
	ItemRow         RowType = "item"
	BatchSummaryRow RowType = "batch_summary"
)

// TimeFormat is the layout of the timestamp column.
const TimeFormat = "2006-01-02 15:04:05"

// Header is the column order of the log.
var Header = []string{
	"timestamp", "batch_id", "row_type", "model", "temperature", "question", "answer", "judge_feedback",
	"judge_prompt", "total_rating(1-10)", "validation_status", "relevance_score",
	"clarity_score", "consistency_score", "creativity_score",
}

var scoreColumns = map[score.Criterion]string{
	score.Total:       "total_rating(1-10)",
	score.Relevance:   "relevance_score",
	score.Clarity:     "clarity_score",
	score.Consistency: "consistency_score",
	score.Creativity:  "creativity_score",
}

// Record is one row of the log.
type Record struct {
	Timestamp        time.Time
	BatchID          string
	RowType          RowType
	Model            string
	Temperature      float32
	Question         string
	Answer           string
	JudgeFeedback    string
	JudgePrompt      string
	ValidationStatus string
	Scores           score.Set
}

// Store appends to and reads from a CSV file.
type Store struct {
	path string
	now  func() time.Time
}

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a Store backed by the file at path. The file is created on first write.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Log appends rec. A zero Timestamp is replaced with the current time and an
// empty RowType with ItemRow.
func (s *Store) Log(ctx context.Context, rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	if rec.RowType == "" {
		rec.RowType = ItemRow
	}

	if err := s.upgrade(ctx); err != nil {
		return err
	}

	info, err := os.Stat(s.path)
	writeHeader := errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encode(rec)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}

	clog.FromContext(ctx).With("path", s.path).With("row_type", rec.RowType).Debug("Appended evaluation record")
	return f.Close()
}

// LogBatchSummary appends a batch_summary row carrying only batch-level scores.
func (s *Store) LogBatchSummary(ctx context.Context, batchID, model string, temperature float32, feedback, prompt string, scores score.Set) error {
	summary := score.NewSet(score.Criteria...)
	for _, c := range []score.Criterion{score.Consistency, score.Creativity} {
		summary[c] = scores[c]
	}
	return s.Log(ctx, Record{
		BatchID:       batchID,
		RowType:       BatchSummaryRow,
		Model:         model,
		Temperature:   temperature,
		JudgeFeedback: feedback,
		JudgePrompt:   prompt,
		Scores:        summary,
	})
}

// History returns every record in the log, oldest first. A missing or empty
// file yields no records. Rows whose timestamp or temperature cannot be parsed
// are skipped, and unparsable score cells load as absent.
func (s *Store) History(ctx context.Context) ([]Record, error) {
	_, rows, err := s.readRows()
	if err != nil {
		return nil, err
	}
	log := clog.FromContext(ctx).With("path", s.path)
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := decode(clog.WithLogger(ctx, log.With("row", i+1)), row)
		if err != nil {
			log.With("row", i+1).With("error", err).Warn("Skipping unreadable history row")
			continue
		}
		out = append(out, rec)
	}
	log.With("records", len(out)).Debug("Loaded evaluation history")
	return out, nil
}

func (s *Store) readRows() ([]string, []map[string]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	return ReadTable(f)
}

func (s *Store) readHeader() ([]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return header, nil
}

// upgrade rewrites a log whose header differs from Header, mapping columns by name.
func (s *Store) upgrade(ctx context.Context) error {
	current, err := s.readHeader()
	if err != nil {
		return err
	}
	if current == nil || slices.Equal(current, Header) {
		return nil
	}
	header, rows, err := s.readRows()
	if err != nil {
		return err
	}
	clog.FromContext(ctx).With("path", s.path).With("columns", len(header)).Info("Upgrading evaluation log to current header")

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(Header))
		for i, col := range Header {
			cells[i] = row[col]
		}
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}

func encode(rec Record) []string {
	row := map[string]string{
		"timestamp":         rec.Timestamp.Format(TimeFormat),
		"batch_id":          rec.BatchID,
		"row_type":          string(rec.RowType),
		"model":             rec.Model,
		"temperature":       strconv.FormatFloat(float64(rec.Temperature), 'f', -1, 32),
		"question":          rec.Question,
		"answer":            rec.Answer,
		"judge_feedback":    rec.JudgeFeedback,
		"judge_prompt":      rec.JudgePrompt,
		"validation_status": rec.ValidationStatus,
	}
	for c, col := range scoreColumns {
		if v, ok := rec.Scores.Get(c); ok {
			row[col] = strconv.Itoa(v)
		}
	}

	cells := make([]string, len(Header))
	for i, col := range Header {
		cells[i] = row[col]
	}
	return cells
}

func decode(ctx context.Context, row map[string]string) (Record, error) {
	rec := Record{
		BatchID:          row["batch_id"],
		RowType:          RowType(row["row_type"]),
		Model:            row["model"],
		Question:         row["question"],
		Answer:           row["answer"],
		JudgeFeedback:    row["judge_feedback"],
		JudgePrompt:      row["judge_prompt"],
		ValidationStatus: row["validation_status"],
		Scores:           score.NewSet(score.Criteria...),
	}

	if ts := row["timestamp"]; ts != "" {
		t, err := time.ParseInLocation(TimeFormat, ts, time.Local)
		if err != nil {
			return Record{}, fmt.Errorf("timestamp: %w", err)
		}
		rec.Timestamp = t
	}
	if temp := row["temperature"]; temp != "" {
		v, err := strconv.ParseFloat(temp, 32)
		if err != nil {
			return Record{}, fmt.Errorf("temperature: %w", err)
		}
		rec.Temperature = float32(v)
	}
	for c, col := range scoreColumns {
		v, err := parseScore(row[col])
		if err != nil {
			clog.FromContext(ctx).With("column", col).With("error", err).Warn("Treating unreadable score as absent")
			continue
		}
		rec.Scores[c] = v
	}
	return rec, nil
}

// parseScore accepts integers and integral floats such as "8.0".
func parseScore(cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	if v, err := strconv.Atoi(cell); err == nil {
		return &v, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) {
		return nil, fmt.Errorf("invalid score %q", cell)
	}
	v := int(f)
	return &v, nil
}
