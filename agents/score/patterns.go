/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package score

import "regexp"

const (
	// ratingValue follows a rating label: optional colon, bold markers, 1-2 digits.
	ratingValue = `[:\s]*\*?\*?\s*(\d{1,2})`
	// criterionValue also tolerates a dash between label and value.
	criterionValue = `[:\s-]*\*?\*?\s*(\d{1,2})`
	// lineStart admits leading whitespace, bold, heading, quote and list markers.
	lineStart = `^[\s*#>_-]*`
	// genericLabel anchors a bare Rating or Score label at a line start, or
	// after an overall/final qualifier anywhere in the text.
	genericLabel = `(?:` + lineStart + `|\b(?:overall|final)\s+)`
)

// DefaultRatingPatterns are tried in order for the Total criterion.
var DefaultRatingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total Score` + ratingValue),
	regexp.MustCompile(`(?i)Total Rating` + ratingValue),
	regexp.MustCompile(`(?im)` + genericLabel + `Rating` + ratingValue),
	regexp.MustCompile(`(?im)` + genericLabel + `Score` + ratingValue),
}

// DefaultCriterionPatterns holds one pattern per named criterion.
var DefaultCriterionPatterns = map[Criterion]*regexp.Regexp{
	Relevance:   regexp.MustCompile(`(?i)Relevance Score` + criterionValue),
	Clarity:     regexp.MustCompile(`(?i)Clarity Score` + criterionValue),
	Consistency: regexp.MustCompile(`(?i)Consistency Score` + criterionValue),
	Creativity:  regexp.MustCompile(`(?i)Creativity(?:/Innovation)? Score` + criterionValue),
}
