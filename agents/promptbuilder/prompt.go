/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
	"slices"
)

// Prompt is a parsed template together with the values bound so far.
type Prompt struct {
	template string
	// names holds placeholders in order of first appearance.
	names []string
	bound map[string]renderer
}

// NewPrompt parses template and records its placeholders.
func NewPrompt(template string) (*Prompt, error) {
	seen := make(map[string]bool)
	var names []string
	if _, err := expand(template, func(name string) (string, error) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return "", nil
	}); err != nil {
		return nil, err
	}
	return &Prompt{
		template: template,
		names:    names,
		bound:    map[string]renderer{},
	}, nil
}

// Placeholders returns the placeholder names in order of first appearance.
func (p *Prompt) Placeholders() []string {
	return slices.Clone(p.names)
}

// Unbound returns the placeholders that still need a value.
func (p *Prompt) Unbound() []string {
	var out []string
	for _, n := range p.names {
		if _, ok := p.bound[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// BindText binds s verbatim to name.
func (p *Prompt) BindText(name, s string) (*Prompt, error) {
	return p.bind(name, text(s))
}

// BindJSON binds the indented JSON encoding of v to name.
func (p *Prompt) BindJSON(name string, v any) (*Prompt, error) {
	return p.bind(name, jsonOf(v))
}

// BindYAML binds the YAML encoding of v to name.
func (p *Prompt) BindYAML(name string, v any) (*Prompt, error) {
	return p.bind(name, yamlOf(v))
}

func (p *Prompt) bind(name string, r renderer) (*Prompt, error) {
	if !slices.Contains(p.names, name) {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, ok := p.bound[name]; ok {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Prompt{
		template: p.template,
		names:    p.names,
		bound:    maps.Clone(p.bound),
	}
	next.bound[name] = r
	return next, nil
}

// Build renders the template. It fails if any placeholder is unbound or a
// value cannot be encoded.
func (p *Prompt) Build() (string, error) {
	if missing := p.Unbound(); len(missing) > 0 {
		return "", fmt.Errorf("unbound placeholders: %v", missing)
	}

	values := make(map[string]string, len(p.bound))
	for name, r := range p.bound {
		v, err := r()
		if err != nil {
			return "", fmt.Errorf("placeholder %q: %w", name, err)
		}
		values[name] = v
	}
	return expand(p.template, func(name string) (string, error) {
		return values[name], nil
	})
}
