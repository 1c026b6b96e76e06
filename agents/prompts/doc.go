/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompts builds the generation prompts for the two supported input
// kinds: EMT class scores (intervention plans) and curriculum requests.
//
// Both kinds have a base template and a Gemini variant that adds a directive
// asking for bare JSON output. Any other provider receives the base template.
//
// Intervention strategies and the curriculum reference text are loaded from an
// embedded YAML catalog.
package prompts
