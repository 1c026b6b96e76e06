/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives JSON schemas from Go types and flattens them into the
// restricted dialect accepted by structured-output generation backends.
//
// Reflected schemas place nested types under "$defs" and point at them with
// "$ref". Backends such as Gemini reject both, along with most annotation and
// validation keywords. Flatten resolves every reference in place, keeps only
// the structural keys listed in a Dialect, and normalizes the result:
//
//   - every object node ends with a non-empty "properties" map,
//   - every array node ends with an object-valued "items" schema,
//   - "required" only names properties that survived, and is dropped if empty.
//
// Unknown references are replaced by an empty schema rather than reported, and
// a reference that is already being expanded (a recursive type) is cut the same
// way at the point it recurs.
//
// ToGenAI converts a flattened tree into the genai SDK representation.
package schema
