/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/evalkit/agents/score"
)

// Mode selects the rubric used for a single-pair evaluation.
type Mode string

const (
	// IndividualMode requests Relevance and Clarity only.
	IndividualMode Mode = "individual"
	// FullMode requests every criterion plus a Total Score.
	FullMode Mode = "full"
)

// ErrorPrefix starts the feedback of every failed evaluation.
const ErrorPrefix = "Error during"

// Pair is one (input, answer) unit of batch evaluation.
type Pair struct {
	Input  string `json:"input"`
	Answer string `json:"answer"`
}

// Result is the outcome of an evaluation.
type Result struct {
	// Feedback is the judge's reply, or an error message when Failed.
	Feedback string `json:"feedback"`

	// Scores holds the criteria applicable to the mode, nil where absent.
	Scores score.Set `json:"scores"`

	// Prompt is the exact text sent, or that would have been sent, to the judge.
	Prompt string `json:"prompt"`
}

// Failed reports whether the evaluation could not be completed.
func (r *Result) Failed() bool {
	return strings.HasPrefix(r.Feedback, ErrorPrefix)
}

// String returns a one-line summary of the scores followed by the feedback.
func (r *Result) String() string {
	return fmt.Sprintf("Scores: %s\n%s", r.Scores, r.Feedback)
}

// Interface defines the contract for judges.
type Interface interface {
	// Evaluate judges a single answer to question using the rubric for mode.
	Evaluate(ctx context.Context, question, answer string, mode Mode) *Result

	// EvaluateBatch judges consistency and creativity across pairs.
	EvaluateBatch(ctx context.Context, pairs []Pair) *Result
}
