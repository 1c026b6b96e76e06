/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Strategy is a named group of classroom activities.
type Strategy struct {
	Name       string   `yaml:"name"`
	Activities []string `yaml:"activities"`
}

// Area describes one EMT area and how to intervene on it.
type Area struct {
	Focus          string     `yaml:"focus"`
	Description    string     `yaml:"description"`
	Strategies     []Strategy `yaml:"strategies"`
	Implementation []string   `yaml:"implementation"`
	Resources      []string   `yaml:"resources"`
}

// Catalog is the reference material embedded in prompts.
type Catalog struct {
	Areas     map[string]Area `yaml:"areas"`
	Reference string          `yaml:"curriculum"`
}

// ParseCatalog decodes a catalog from YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Areas) == 0 {
		return nil, fmt.Errorf("parse catalog: no areas defined")
	}
	return &c, nil
}

// DefaultCatalog is the embedded catalog.
var DefaultCatalog = mustParse(catalogYAML)

func mustParse(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatArea renders an area's strategies for inclusion in a prompt.
func FormatArea(a Area) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Focus: %s\n", a.Focus)
	fmt.Fprintf(&sb, "Description: %s\n", a.Description)

	sb.WriteString("\nStrategies:\n")
	for i, s := range a.Strategies {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s.Name)
		for _, act := range s.Activities {
			fmt.Fprintf(&sb, "   - %s\n", act)
		}
	}

	if len(a.Implementation) > 0 {
		sb.WriteString("\nImplementation Steps:\n")
		for _, step := range a.Implementation {
			fmt.Fprintf(&sb, "- %s\n", step)
		}
	}
	if len(a.Resources) > 0 {
		sb.WriteString("\nResources:\n")
		for _, r := range a.Resources {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// strategiesFor returns the formatted strategies for area, or a fallback
// message for areas the catalog does not cover.
func (c *Catalog) strategiesFor(area string) string {
	a, ok := c.Areas[area]
	if !ok {
		return fmt.Sprintf("No specific strategies available for %s. Use general evidence-based practices for emotional development.", area)
	}
	return FormatArea(a)
}
