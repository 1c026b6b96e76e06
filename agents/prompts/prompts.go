/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import "fmt"

// Kind names an input domain.
type Kind string

const (
	// EMT inputs carry per-student EMT scores and class metadata.
	EMT Kind = "emt"
	// CurriculumKind inputs carry a grade level, skill areas and a score.
	CurriculumKind Kind = "curriculum"
)

// Kinds lists the supported kinds.
var Kinds = []Kind{EMT, CurriculumKind}

const geminiProvider = "gemini"

// Build parses raw as input of the given kind and renders its prompt.
func (c *Catalog) Build(kind Kind, provider string, raw []byte) (string, error) {
	switch kind {
	case EMT:
		d, err := ParseIntervention(raw)
		if err != nil {
			return "", err
		}
		return c.Intervention(provider, d)
	case CurriculumKind:
		d, err := ParseCurriculum(raw)
		if err != nil {
			return "", err
		}
		return c.Curriculum(provider, d)
	default:
		return "", fmt.Errorf("unknown prompt type %q", kind)
	}
}

// Build renders a prompt with DefaultCatalog.
func Build(kind Kind, provider string, raw []byte) (string, error) {
	return DefaultCatalog.Build(kind, provider, raw)
}
