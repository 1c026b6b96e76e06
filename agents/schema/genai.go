/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// ToGenAI converts a flattened schema tree into a genai.Schema.
// additionalProperties has no genai counterpart and is omitted.
func ToGenAI(schema map[string]any) (*genai.Schema, error) {
	if schema == nil {
		return nil, nil
	}

	out := &genai.Schema{}
	switch t := schema["type"].(type) {
	case nil:
	case string:
		out.Type = genai.Type(strings.ToUpper(t))
	case []any:
		// ["string", "null"] style unions map onto a nullable scalar.
		for _, v := range t {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if s == "null" {
				nullable := true
				out.Nullable = &nullable
				continue
			}
			if out.Type == "" {
				out.Type = genai.Type(strings.ToUpper(s))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported type value %T", t)
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child, ok := props[name].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q: expected object schema, got %T", name, props[name])
			}
			converted, err := ToGenAI(child)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			out.Properties[name] = converted
		}
		out.PropertyOrdering = names
	}

	if items, ok := schema["items"].(map[string]any); ok {
		converted, err := ToGenAI(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out.Items = converted
	}

	if required, ok := stringList(schema["required"]); ok && len(required) > 0 {
		out.Required = required
	}

	if enum, ok := schema["enum"].([]any); ok {
		for _, v := range enum {
			out.Enum = append(out.Enum, fmt.Sprint(v))
		}
	}

	return out, nil
}
