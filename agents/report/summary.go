/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"strings"

	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/score"
)

// Average is the mean of the values present for one criterion.
type Average struct {
	Sum   int
	Count int
}

// Mean returns the average, or zero when no values were seen.
func (a Average) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return float64(a.Sum) / float64(a.Count)
}

// String formats the mean with two decimals, or N/A when empty.
func (a Average) String() string {
	if a.Count == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", a.Mean())
}

// Summary holds headline metrics over a history log.
type Summary struct {
	// Rows counts every row, including batch summaries.
	Rows int
	// Batches counts batch_summary rows.
	Batches int
	// Valid counts rows whose validation status reports a valid answer.
	Valid int
	// Averages holds the per-criterion means over rows where the score is present.
	Averages map[score.Criterion]Average
	// Models lists the distinct models in order of first appearance.
	Models []string
}

// Summarize aggregates records into a Summary.
func Summarize(records []history.Record) Summary {
	s := Summary{
		Rows:     len(records),
		Averages: make(map[score.Criterion]Average, len(score.Criteria)),
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.RowType == history.BatchSummaryRow {
			s.Batches++
		}
		if strings.Contains(rec.ValidationStatus, "Valid") {
			s.Valid++
		}
		if rec.Model != "" && !seen[rec.Model] {
			seen[rec.Model] = true
			s.Models = append(s.Models, rec.Model)
		}
		for _, c := range score.Criteria {
			if v, ok := rec.Scores.Get(c); ok {
				avg := s.Averages[c]
				avg.Sum += v
				avg.Count++
				s.Averages[c] = avg
			}
		}
	}
	return s
}
