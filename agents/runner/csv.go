/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/prompts"
	"chainguard.dev/evalkit/agents/score"
)

// ErrMissingColumns is returned by ReadInputs when the type or input column is absent.
var ErrMissingColumns = errors.New("CSV must contain 'type' and 'input' columns")

// ResultHeader is the column order written by WriteResults.
var ResultHeader = []string{
	"type", "input", "generated_answer", "judge_feedback", "total_score",
	"relevance_score", "clarity_score", "validation_status", "generator_model", "judge_model",
}

// ReadInputs reads batch inputs from a CSV stream with type and input columns.
// Other columns are ignored.
func ReadInputs(r io.Reader) ([]Input, error) {
	header, rows, err := history.ReadTable(r)
	if err != nil {
		return nil, err
	}
	var hasType, hasInput bool
	for _, h := range header {
		hasType = hasType || h == "type"
		hasInput = hasInput || h == "input"
	}
	if !hasType || !hasInput {
		return nil, ErrMissingColumns
	}

	inputs := make([]Input, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, Input{Kind: prompts.Kind(row["type"]), Raw: row["input"]})
	}
	return inputs, nil
}

// WriteResults writes one CSV row per item. Failed rows carry N/A feedback and empty scores.
func WriteResults(w io.Writer, items []*ItemResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, item := range items {
		feedback := "N/A"
		var scores score.Set
		if item.Judge != nil {
			feedback = item.Judge.Feedback
			scores = item.Judge.Scores
		}
		row := []string{
			string(item.Kind),
			item.Input,
			item.Answer,
			feedback,
			cell(scores, score.Total),
			cell(scores, score.Relevance),
			cell(scores, score.Clarity),
			item.ValidationStatus,
			item.GeneratorModel,
			item.JudgeModel,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(s score.Set, c score.Criterion) string {
	if v, ok := s.Get(c); ok {
		return strconv.Itoa(v)
	}
	return ""
}
