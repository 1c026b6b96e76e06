/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chainguard.dev/evalkit/agents/score"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var metricLabels = map[score.Criterion]string{
	score.Total:       "Avg Rating (1-10)",
	score.Relevance:   "Avg Relevance",
	score.Clarity:     "Avg Clarity",
	score.Consistency: "Avg Consistency",
	score.Creativity:  "Avg Creativity",
}

// Table renders a Summary as a markdown table.
func Table(s Summary) string {
	var buf bytes.Buffer
	table := createStandardTable([]string{"Metric", "Value"}, &buf)

	_ = table.Append([]string{"Total Evaluations", strconv.Itoa(s.Rows)})
	_ = table.Append([]string{"Batches", strconv.Itoa(s.Batches)})
	_ = table.Append([]string{"Valid Responses", fmt.Sprintf("%d / %d", s.Valid, s.Rows)})
	for _, c := range score.Criteria {
		_ = table.Append([]string{metricLabels[c], s.Averages[c].String()})
	}
	models := "-"
	if len(s.Models) > 0 {
		models = strings.Join(s.Models, ", ")
	}
	_ = table.Append([]string{"Models Used", fmt.Sprintf("%d (%s)", len(s.Models), models)})

	_ = table.Render()
	return fmt.Sprintf("## Evaluation History\n\n%s", buf.String())
}

// createStandardTable creates a table writer with the formatting shared by all reports.
func createStandardTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 80,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
