/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

// Dialect describes which schema keywords a backend accepts for structured output.
type Dialect struct {
	// Name identifies the dialect in logs.
	Name string

	// Allowed lists the structural keys retained on every node.
	Allowed map[string]bool

	// Unsupported lists keys known to be rejected. They are stripped even if
	// they reappear after normalization.
	Unsupported map[string]bool

	// Placeholder is the property synthesized for objects left without properties.
	Placeholder string

	// DefaultType is the type used for synthesized properties and missing array items.
	DefaultType string
}

// Gemini is the dialect accepted by Gemini structured output.
var Gemini = Dialect{
	Name: "gemini",
	Allowed: keySet(
		"type", "properties", "required", "items", "additionalProperties", "enum",
	),
	Unsupported: keySet(
		"$defs", "definitions", "$schema", "$id", "title", "description", "examples",
		"maxItems", "minItems", "uniqueItems", "maxLength", "minLength", "pattern", "format",
		"maximum", "minimum", "exclusiveMaximum", "exclusiveMinimum", "multipleOf", "default",
		"nullable", "const", "oneOf", "anyOf", "allOf", "not", "deprecated", "readOnly",
		"writeOnly", "contentMediaType", "contentEncoding",
	),
	Placeholder: "_",
	DefaultType: "string",
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
