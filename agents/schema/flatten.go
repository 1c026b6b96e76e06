/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import "strings"

var refPrefixes = []string{"#/$defs/", "#/definitions/"}

// Flatten flattens schema using the Gemini dialect.
func Flatten(schema map[string]any) map[string]any {
	return Gemini.Flatten(schema)
}

// Flatten returns a self-contained copy of schema restricted to the dialect.
// The input is never modified.
func (d Dialect) Flatten(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}

	r := &resolver{
		dialect: d,
		defs:    definitions(schema),
		active:  make(map[string]bool),
	}
	flat, ok := r.resolve(schema).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	for k := range d.Unsupported {
		delete(flat, k)
	}
	return d.clean(flat)
}

// definitions returns the "$defs" table, falling back to "definitions".
func definitions(schema map[string]any) map[string]any {
	if defs, ok := schema["$defs"].(map[string]any); ok && len(defs) > 0 {
		return defs
	}
	if defs, ok := schema["definitions"].(map[string]any); ok {
		return defs
	}
	return nil
}

type resolver struct {
	dialect Dialect
	defs    map[string]any
	// active holds definitions currently being expanded.
	active map[string]bool
}

func (r *resolver) resolve(node any) any {
	switch n := node.(type) {
	case map[string]any:
		return r.resolveMap(n)
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = r.resolve(v)
		}
		return out
	default:
		return node
	}
}

func (r *resolver) resolveMap(node map[string]any) any {
	if ref, ok := node["$ref"].(string); ok {
		if name, target, ok := r.lookup(ref); ok {
			r.active[name] = true
			defer delete(r.active, name)
			return r.resolve(target)
		}
	}

	out := make(map[string]any, len(node))
	for k, v := range node {
		if !r.dialect.Allowed[k] {
			continue
		}
		switch k {
		case "properties":
			props, ok := v.(map[string]any)
			if !ok {
				out[k] = v
				continue
			}
			resolved := make(map[string]any, len(props))
			for name, prop := range props {
				resolved[name] = r.resolve(prop)
			}
			out[k] = resolved

		case "items":
			// Tuple-style items collapse to the first schema.
			if list, ok := v.([]any); ok && len(list) > 0 {
				out[k] = r.resolve(list[0])
				continue
			}
			out[k] = r.resolve(v)

		case "required", "enum":
			out[k] = copyList(v)

		default:
			out[k] = r.resolve(v)
		}
	}
	return out
}

// lookup resolves a local reference. Unknown and recursive references report false.
func (r *resolver) lookup(ref string) (string, map[string]any, bool) {
	for _, prefix := range refPrefixes {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		name := ref[strings.LastIndex(ref, "/")+1:]
		if r.active[name] {
			return "", nil, false
		}
		target, ok := r.defs[name].(map[string]any)
		if !ok {
			return "", nil, false
		}
		return name, target, true
	}
	return "", nil, false
}

// clean enforces the object, array and required invariants bottom-up.
func (d Dialect) clean(node map[string]any) map[string]any {
	isObject := typeIs(node, "object")

	if props, ok := node["properties"].(map[string]any); ok || isObject {
		cleaned := make(map[string]any, len(props))
		for name, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				cleaned[name] = d.clean(m)
			} else {
				cleaned[name] = prop
			}
		}

		if isObject {
			if names, ok := stringList(node["required"]); ok {
				kept := make([]any, 0, len(names))
				for _, name := range names {
					if _, ok := cleaned[name]; ok {
						kept = append(kept, name)
					}
				}
				if len(kept) > 0 {
					node["required"] = kept
				} else {
					delete(node, "required")
				}
			}
			if len(cleaned) == 0 {
				cleaned[d.Placeholder] = map[string]any{"type": d.DefaultType}
			}
		}
		node["properties"] = cleaned
	}

	items, itemsIsMap := node["items"].(map[string]any)
	switch {
	case itemsIsMap:
		node["items"] = d.clean(items)
	case typeIs(node, "array"):
		node["items"] = map[string]any{"type": d.DefaultType}
	}

	if extra, ok := node["additionalProperties"].(map[string]any); ok {
		node["additionalProperties"] = d.clean(extra)
	}

	for k := range node {
		if d.Unsupported[k] {
			delete(node, k)
		}
	}
	return node
}

func typeIs(node map[string]any, want string) bool {
	t, ok := node["type"].(string)
	return ok && t == want
}

// stringList returns the string members of a list value.
func stringList(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return l, true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func copyList(v any) any {
	switch l := v.(type) {
	case []any:
		return append([]any(nil), l...)
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	default:
		return v
	}
}
