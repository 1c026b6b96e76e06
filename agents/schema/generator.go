/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with project defaults.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator that emits nested types under "$defs",
// the shape Flatten expects.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// ReflectMap returns the JSON schema for v as a generic tree.
func (g *Generator) ReflectMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(g.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return out, nil
}

// Reflect derives the JSON schema for the provided value using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a generic schema tree.
func ReflectType[T any]() (map[string]any, error) {
	var zero T
	return NewGenerator().ReflectMap(&zero)
}

// FlattenType reflects T and flattens the result with the Gemini dialect.
func FlattenType[T any]() (map[string]any, error) {
	s, err := ReflectType[T]()
	if err != nil {
		return nil, err
	}
	return Flatten(s), nil
}
