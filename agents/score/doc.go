/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package score turns free-form judge feedback into numeric 1-10 scores.
//
// Judges are asked to answer in a fixed layout such as
//
//	**Relevance Score:** 8
//	**Clarity Score:** 7
//	**Total Score:** 8
//
// but nothing guarantees they comply, so extraction is deliberately lenient
// about markdown and punctuation and deliberately strict about range: a value
// outside [MinScore, MaxScore] is reported as absent, never clamped.
//
// # Patterns
//
// An Extractor owns the pattern table. The overall rating is looked up with an
// ordered list of labels ("Total Score", "Total Rating", "Rating", "Score");
// the first label that yields an in-range value wins, even if a later label
// also matches elsewhere in the text. The generic "Rating" and "Score" labels
// only count when they open a line or follow "Overall" or "Final", so criterion
// labels like "Relevance Score" never leak into the total. Each named criterion has its own single pattern.
//
// Default carries the table used by the package-level helpers. A different
// judge output dialect can be supported by building another Extractor with
// NewExtractor without touching the judge orchestration.
//
// # Absent versus out of range
//
// Extract and the Extract* helpers return nil for both a missing label and a
// malformed value. Lookup exposes the distinction through Outcome so callers
// can surface judge formatting problems.
package score
