/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"

	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/score"
	"chainguard.dev/sdk/pathtree"
)

// SingleBatch names the group holding rows logged outside a batch.
const SingleBatch = "single"

// Tree groups records by batch id. Each batch node carries its item count and
// batch scores; each item node carries its total rating, model and validation status.
func Tree(records []history.Record) string {
	tree := pathtree.New()
	tree.PrintOption = pathtree.KeyValueLabel

	var order []string
	groups := make(map[string][]history.Record)
	for _, rec := range records {
		id := rec.BatchID
		if id == "" {
			id = SingleBatch
		}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], rec)
	}

	for _, id := range order {
		batchPath := "/" + id

		var items []history.Record
		var summary *history.Record
		for _, rec := range groups[id] {
			if rec.RowType == history.BatchSummaryRow {
				summary = &rec
				continue
			}
			items = append(items, rec)
		}

		word := "items"
		if len(items) == 1 {
			word = "item"
		}
		value := fmt.Sprintf("%d %s", len(items), word)
		label := ""
		if summary != nil {
			label = fmt.Sprintf("consistency %s, creativity %s",
				summary.Scores.Format(score.Consistency), summary.Scores.Format(score.Creativity))
		}
		if err := tree.Add(batchPath, value, label); err != nil {
			_ = tree.Update(batchPath, value, label)
		}

		for i, rec := range items {
			itemPath := fmt.Sprintf("%s/%d", batchPath, i+1)
			status := rec.ValidationStatus
			if status == "" {
				status = "unvalidated"
			}
			_ = tree.Add(itemPath, rec.Scores.Format(score.Total), fmt.Sprintf("%s, %s", rec.Model, status))
		}
	}

	return tree.String()
}
