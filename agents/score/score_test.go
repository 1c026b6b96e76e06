/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package score_test

import (
	"regexp"
	"strconv"
	"testing"

	"chainguard.dev/evalkit/agents/score"
	"github.com/google/go-cmp/cmp"
)

func ptr(v int) *int { return &v }

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{{
		name: "total wins over criterion scores",
		text: "Relevance Score: 8\nClarity Score: 7\nTotal Score: 9\n",
		want: ptr(9),
	}, {
		name: "total rating label",
		text: "Total Rating: 6",
		want: ptr(6),
	}, {
		name: "markdown bold",
		text: "**Total Score:** 7",
		want: ptr(7),
	}, {
		name: "generic rating at line start",
		text: "Some feedback.\n**Rating:** 4",
		want: ptr(4),
	}, {
		name: "generic score at line start",
		text: "Feedback first.\n- Score: 3",
		want: ptr(3),
	}, {
		name: "overall score",
		text: "Overall Score: 7",
		want: ptr(7),
	}, {
		name: "final rating out of ten",
		text: "Relevance Score: 9\nFinal Rating: 8/10",
		want: ptr(8),
	}, {
		name: "bold overall score mid line",
		text: "In summary, the **Overall Score:** 6 reflects minor gaps.",
		want: ptr(6),
	}, {
		name: "case insensitive",
		text: "TOTAL SCORE: 10",
		want: ptr(10),
	}, {
		name: "criterion labels do not count as total",
		text: "Relevance Score: 8\nClarity Score: 7",
		want: nil,
	}, {
		name: "out of range total falls through to later labels",
		text: "Total Score: 15\nScore: 5",
		want: ptr(5),
	}, {
		name: "out of range only",
		text: "Total Score: 0",
		want: nil,
	}, {
		name: "earlier label wins even when later label appears first",
		text: "Rating: 2\nTotal Score: 8",
		want: ptr(8),
	}, {
		name: "no label",
		text: "nothing useful here",
		want: nil,
	}, {
		name: "empty",
		text: "",
		want: nil,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score.ExtractRating(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractRating() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractCriteria(t *testing.T) {
	tests := []struct {
		name    string
		extract func(string) *int
		text    string
		want    *int
	}{
		{"relevance", score.ExtractRelevance, "Relevance Score: 6", ptr(6)},
		{"relevance eleven", score.ExtractRelevance, "Relevance Score: 11", nil},
		{"relevance missing", score.ExtractRelevance, "no score here", nil},
		{"relevance bold", score.ExtractRelevance, "**Relevance Score:** 9", ptr(9)},
		{"relevance dash", score.ExtractRelevance, "Relevance Score - 4", ptr(4)},
		{"clarity", score.ExtractClarity, "Clarity Score: 5", ptr(5)},
		{"clarity zero", score.ExtractClarity, "Clarity Score: 0", nil},
		{"consistency", score.ExtractConsistency, "Consistency Score: 7", ptr(7)},
		{"consistency thirteen", score.ExtractConsistency, "Consistency Score: 13", nil},
		{"creativity", score.ExtractCreativity, "Creativity Score: 8", ptr(8)},
		{"creativity innovation", score.ExtractCreativity, "Creativity/Innovation Score: 9", ptr(9)},
		{"creativity zero", score.ExtractCreativity, "Creativity Score: 0", nil},
		{"lowercase", score.ExtractClarity, "clarity score: 2", ptr(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.extract(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extract(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestEveryInRangeValue(t *testing.T) {
	for n := 0; n <= 20; n++ {
		text := "Consistency Score: " + strconv.Itoa(n)
		got := score.ExtractConsistency(text)
		inRange := n >= score.MinScore && n <= score.MaxScore
		switch {
		case inRange && (got == nil || *got != n):
			t.Errorf("ExtractConsistency(%q): got = %v, wanted = %d", text, got, n)
		case !inRange && got != nil:
			t.Errorf("ExtractConsistency(%q): got = %d, wanted = nil", text, *got)
		}
	}
}

func TestLookupOutcome(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		criterion   score.Criterion
		wantValue   int
		wantOutcome score.Outcome
	}{
		{"found", "Clarity Score: 7", score.Clarity, 7, score.Found},
		{"absent", "Clarity: fine", score.Clarity, 0, score.Absent},
		{"out of range", "Clarity Score: 15", score.Clarity, 0, score.OutOfRange},
		{"total out of range", "Total Score: 12", score.Total, 0, score.OutOfRange},
		{"total found after out of range", "Total Score: 12\nRating: 6", score.Total, 6, score.Found},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, outcome := score.Lookup(tt.text, tt.criterion)
			if v != tt.wantValue || outcome != tt.wantOutcome {
				t.Errorf("Lookup(): got = (%d, %s), wanted = (%d, %s)", v, outcome, tt.wantValue, tt.wantOutcome)
			}
		})
	}
}

func TestScores(t *testing.T) {
	text := "Relevance: good\nRelevance Score: 8\nClarity: ok\nClarity Score: 7\n"
	got := score.Default.Scores(text, score.Criteria...)
	want := score.Set{
		score.Total:       nil,
		score.Relevance:   ptr(8),
		score.Clarity:     ptr(7),
		score.Consistency: nil,
		score.Creativity:  nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scores() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAccessors(t *testing.T) {
	s := score.NewSet(score.Consistency, score.Creativity)
	if !s.Has(score.Consistency) || s.Has(score.Relevance) {
		t.Errorf("Has(): got = %v, wanted consistency and creativity only", s)
	}
	if _, ok := s.Get(score.Consistency); ok {
		t.Error("Get(consistency): got = present, wanted = absent")
	}
	s[score.Creativity] = ptr(9)
	if v, ok := s.Get(score.Creativity); !ok || v != 9 {
		t.Errorf("Get(creativity): got = (%d, %v), wanted = (9, true)", v, ok)
	}
	if got, want := s.Format(score.Creativity), "9/10"; got != want {
		t.Errorf("Format(): got = %q, wanted = %q", got, want)
	}
	if got, want := s.Format(score.Consistency), "N/A"; got != want {
		t.Errorf("Format(): got = %q, wanted = %q", got, want)
	}
	if got, want := s.String(), "consistency=N/A creativity=9/10"; got != want {
		t.Errorf("String(): got = %q, wanted = %q", got, want)
	}
}

func TestCustomExtractor(t *testing.T) {
	e := score.NewExtractor(
		[]*regexp.Regexp{regexp.MustCompile(`(?i)Overall\s*=\s*(\d{1,2})`)},
		map[score.Criterion]*regexp.Regexp{
			score.Relevance: regexp.MustCompile(`(?i)rel\s*=\s*(\d{1,2})`),
		},
	)
	text := "rel=4 overall = 6 Total Score: 9"
	if got := e.Extract(text, score.Total); got == nil || *got != 6 {
		t.Errorf("Extract(total): got = %v, wanted = 6", got)
	}
	if got := e.Extract(text, score.Relevance); got == nil || *got != 4 {
		t.Errorf("Extract(relevance): got = %v, wanted = 4", got)
	}
	if got := e.Extract(text, score.Clarity); got != nil {
		t.Errorf("Extract(clarity): got = %d, wanted = nil", *got)
	}
}
