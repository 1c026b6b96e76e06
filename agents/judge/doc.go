/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge scores generated answers with a second model call.
//
// # Modes
//
// Evaluate judges one (question, answer) pair:
//
//   - IndividualMode asks only for Relevance and Clarity. Total, Consistency
//     and Creativity are still extracted from the reply, but the prompt never
//     requests them so they are normally absent.
//   - FullMode asks for Relevance, Clarity, Consistency, Creativity and an
//     overall Total Score in one call.
//
// EvaluateBatch judges a whole set of pairs in a single call, for Consistency
// and Creativity across the set only. It makes exactly one backend call no
// matter how many pairs it is given.
//
// # Failures
//
// Evaluation never returns an error. When the backend fails, the Result holds
// feedback starting with ErrorPrefix, a score set with every applicable
// criterion absent, and the prompt that was attempted:
//
//	r := j.Evaluate(ctx, question, answer, judge.IndividualMode)
//	if r.Failed() {
//		log.Warn("judge failed", "feedback", r.Feedback)
//	}
//
// # Scores
//
// Scores are parsed from the reply text with a score.Extractor. A label whose
// value falls outside 1..10 is logged as a warning and left absent.
package judge
