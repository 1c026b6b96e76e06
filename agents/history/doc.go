/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package history keeps an append-only CSV log of evaluations.
//
// Each row is either an "item" row, one generated answer with its judge
// feedback and per-item scores, or a "batch_summary" row holding the batch-level
// consistency and creativity scores. Absent scores are written as empty cells.
//
// Files are read by column name, so logs written with fewer columns still load
// and are upgraded to the current Header on the next append.
package history
