/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package runner drives the evaluation workflow.
//
// RunOne renders a prompt from structured input, generates an answer,
// validates it, has the judge score it and appends an item row to the
// history log. RunBatch does the same for every input row, pausing between
// generation calls, then asks the judge for batch-level consistency and
// creativity scores and logs a batch_summary row.
//
// A failure on one batch row is recorded as an error result and the batch
// carries on with the remaining rows.
package runner
