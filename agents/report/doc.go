/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders the evaluation history log.
//
// Summarize aggregates item rows into headline metrics, Table renders those
// metrics as a markdown table, and Tree groups rows by batch:
//
//	records, err := store.History(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(report.Table(report.Summarize(records)))
//	fmt.Println(report.Tree(records))
package report
