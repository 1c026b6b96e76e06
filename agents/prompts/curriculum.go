/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/evalkit/agents/promptbuilder"
)

const curriculumBase = `You are a curriculum designer for early childhood social-emotional learning.

Student Profile:
- Grade Level: {{grade_level}}
- Skill Areas: {{skill_areas}}
- Current Score: {{score}}

Curriculum Reference:
{{curriculum}}

Design a two-week lesson sequence that moves the student toward the grade expectation for each skill area.
Respond in JSON with this schema:
{
  "grade_level": "...",
  "lessons": [{"day": 1, "skill_area": "...", "objective": "...", "activity": "..."}],
  "success_criteria": ["..."]
}
`

const curriculumGemini = curriculumBase + `
Return only a valid JSON object, with no markdown fences or commentary.
`

var (
	curriculumPrompt       = promptbuilder.MustNewPrompt(curriculumBase)
	curriculumGeminiPrompt = promptbuilder.MustNewPrompt(curriculumGemini)
)

// CurriculumData is the input of curriculum prompts.
type CurriculumData struct {
	GradeLevel any      `json:"grade_level"`
	SkillAreas []string `json:"skill_areas"`
	Score      float64  `json:"score"`
}

// ParseCurriculum decodes curriculum input.
func ParseCurriculum(raw []byte) (CurriculumData, error) {
	var d CurriculumData
	if err := json.Unmarshal(raw, &d); err != nil {
		return CurriculumData{}, fmt.Errorf("parse curriculum input: %w", err)
	}
	if d.GradeLevel == nil {
		return CurriculumData{}, errors.New("parse curriculum input: grade_level is required")
	}
	return d, nil
}

// Curriculum renders the curriculum prompt for provider.
func (c *Catalog) Curriculum(provider string, d CurriculumData) (string, error) {
	p := curriculumPrompt
	if provider == geminiProvider {
		p = curriculumGeminiPrompt
	}
	return p.
		MustBindText("grade_level", fmt.Sprint(d.GradeLevel)).
		MustBindText("skill_areas", strings.Join(d.SkillAreas, ", ")).
		MustBindText("score", fmt.Sprintf("%.1f%%", d.Score)).
		MustBindText("curriculum", strings.TrimRight(c.Reference, "\n")).
		Build()
}

// Curriculum renders a curriculum prompt with DefaultCatalog.
func Curriculum(provider string, d CurriculumData) (string, error) {
	return DefaultCatalog.Curriculum(provider, d)
}
