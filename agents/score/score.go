/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Criterion names a judged dimension.
type Criterion string

const (
	// Total is the overall rating.
	Total Criterion = "total"
	// Relevance measures how well the answer addresses the input.
	Relevance Criterion = "relevance"
	// Clarity measures how understandable the answer is.
	Clarity Criterion = "clarity"
	// Consistency measures coherence across answers.
	Consistency Criterion = "consistency"
	// Creativity measures originality across answers.
	Creativity Criterion = "creativity"
)

// Criteria lists every criterion in reporting order.
var Criteria = []Criterion{Total, Relevance, Clarity, Consistency, Creativity}

// Bounds of a valid score, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Outcome describes what a lookup found in the judge text.
type Outcome int

const (
	// Absent means no pattern for the criterion matched.
	Absent Outcome = iota
	// Found means an in-range value was extracted.
	Found
	// OutOfRange means a label matched but every value was outside [MinScore, MaxScore].
	OutOfRange
)

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case Found:
		return "found"
	case OutOfRange:
		return "out_of_range"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Set maps each requested criterion to its score. A nil value marks a score
// that was requested but could not be extracted.
type Set map[Criterion]*int

// NewSet returns a Set holding an absent entry for each criterion.
func NewSet(criteria ...Criterion) Set {
	s := make(Set, len(criteria))
	for _, c := range criteria {
		s[c] = nil
	}
	return s
}

// Get returns the score for c and whether it is present.
func (s Set) Get(c Criterion) (int, bool) {
	v, ok := s[c]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Has reports whether c was requested, present or not.
func (s Set) Has(c Criterion) bool {
	_, ok := s[c]
	return ok
}

// Format renders the score for c as "N/10", or "N/A" when absent.
func (s Set) Format(c Criterion) string {
	if v, ok := s.Get(c); ok {
		return fmt.Sprintf("%d/%d", v, MaxScore)
	}
	return "N/A"
}

// String implements fmt.Stringer
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range Criteria {
		if s.Has(c) {
			parts = append(parts, fmt.Sprintf("%s=%s", c, s.Format(c)))
		}
	}
	return strings.Join(parts, " ")
}

// Extractor pulls scores out of judge text using a pattern table.
// Every pattern must have exactly one capture group holding the digits.
type Extractor struct {
	rating   []*regexp.Regexp
	criteria map[Criterion]*regexp.Regexp
}

// NewExtractor builds an Extractor. rating is consulted in order for Total;
// criteria maps each remaining criterion to its pattern.
func NewExtractor(rating []*regexp.Regexp, criteria map[Criterion]*regexp.Regexp) *Extractor {
	e := &Extractor{
		rating:   append([]*regexp.Regexp(nil), rating...),
		criteria: make(map[Criterion]*regexp.Regexp, len(criteria)),
	}
	for c, re := range criteria {
		e.criteria[c] = re
	}
	return e
}

// Default uses DefaultRatingPatterns and DefaultCriterionPatterns.
var Default = NewExtractor(DefaultRatingPatterns, DefaultCriterionPatterns)

// Lookup finds the score for c in text and reports how the lookup went.
func (e *Extractor) Lookup(text string, c Criterion) (int, Outcome) {
	patterns := e.rating
	if c != Total {
		re, ok := e.criteria[c]
		if !ok {
			return 0, Absent
		}
		patterns = []*regexp.Regexp{re}
	}

	outcome := Absent
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if v >= MinScore && v <= MaxScore {
			return v, Found
		}
		outcome = OutOfRange
	}
	return 0, outcome
}

// Extract returns the score for c, or nil when it is absent or out of range.
func (e *Extractor) Extract(text string, c Criterion) *int {
	v, outcome := e.Lookup(text, c)
	if outcome != Found {
		return nil
	}
	return &v
}

// Scores extracts every listed criterion into a new Set.
func (e *Extractor) Scores(text string, criteria ...Criterion) Set {
	s := NewSet(criteria...)
	for _, c := range criteria {
		s[c] = e.Extract(text, c)
	}
	return s
}

// Lookup calls Default.Lookup.
func Lookup(text string, c Criterion) (int, Outcome) {
	return Default.Lookup(text, c)
}

// ExtractRating returns the overall rating using the ordered label list.
func ExtractRating(text string) *int {
	return Default.Extract(text, Total)
}

// ExtractRelevance returns the "Relevance Score" value.
func ExtractRelevance(text string) *int {
	return Default.Extract(text, Relevance)
}

// ExtractClarity returns the "Clarity Score" value.
func ExtractClarity(text string) *int {
	return Default.Extract(text, Clarity)
}

// ExtractConsistency returns the "Consistency Score" value.
func ExtractConsistency(text string) *int {
	return Default.Extract(text, Consistency)
}

// ExtractCreativity returns the "Creativity Score" (or "Creativity/Innovation Score") value.
func ExtractCreativity(text string) *int {
	return Default.Extract(text, Creativity)
}
