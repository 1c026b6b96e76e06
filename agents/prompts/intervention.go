/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"encoding/json"
	"fmt"

	"chainguard.dev/evalkit/agents/promptbuilder"
)

// DefaultArea is used when the input names no deficient area.
const DefaultArea = "EMT1"

const interventionBase = `You are an expert in early childhood social-emotional learning. Design a classroom intervention plan for the class below.

Class Information:
- Class ID: {{class_id}}
- Number of Students: {{num_students}}
- Primary Area Needing Intervention: {{deficient_area}}

Average EMT Scores:
- EMT1 (visual-to-visual emotion matching): {{emt1}}
- EMT2 (visual-to-verbal emotion matching): {{emt2}}
- EMT3 (verbal-to-visual emotion matching): {{emt3}}
- EMT4 (situation-to-emotion matching): {{emt4}}

Recommended Strategies for {{deficient_area}}:
{{strategies}}

Create a four-week plan that targets the primary area while maintaining the others.
Respond with a JSON object using this schema:
{
  "summary": "one paragraph overview",
  "weekly_plan": [{"week": 1, "goal": "...", "activities": ["..."]}],
  "assessment": "how progress will be measured"
}
`

const interventionGemini = interventionBase + `
FINAL CHECK: Your response must be a single JSON object. Start with the opening curly brace, end with the closing curly brace, and do not wrap it in markdown fences or add any other text.
`

var (
	interventionPrompt       = promptbuilder.MustNewPrompt(interventionBase)
	interventionGeminiPrompt = promptbuilder.MustNewPrompt(interventionGemini)
)

// InterventionData is the averaged class profile used by intervention prompts.
type InterventionData struct {
	ClassID       string
	NumStudents   any
	DeficientArea string
	EMT1Avg       float64
	EMT2Avg       float64
	EMT3Avg       float64
	EMT4Avg       float64
}

type emtInput struct {
	Scores   map[string][]float64 `json:"scores"`
	Metadata struct {
		ClassID       string `json:"class_id"`
		DeficientArea string `json:"deficient_area"`
		NumStudents   any    `json:"num_students"`
	} `json:"metadata"`
}

// ParseIntervention averages the per-student scores in raw. EMT areas with
// no scores average to zero.
func ParseIntervention(raw []byte) (InterventionData, error) {
	var in emtInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return InterventionData{}, fmt.Errorf("parse EMT input: %w", err)
	}
	return InterventionData{
		ClassID:       in.Metadata.ClassID,
		NumStudents:   in.Metadata.NumStudents,
		DeficientArea: in.Metadata.DeficientArea,
		EMT1Avg:       average(in.Scores["EMT1"]),
		EMT2Avg:       average(in.Scores["EMT2"]),
		EMT3Avg:       average(in.Scores["EMT3"]),
		EMT4Avg:       average(in.Scores["EMT4"]),
	}, nil
}

func average(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Intervention renders the intervention prompt for provider.
func (c *Catalog) Intervention(provider string, d InterventionData) (string, error) {
	p := interventionPrompt
	if provider == geminiProvider {
		p = interventionGeminiPrompt
	}

	area := d.DeficientArea
	if area == "" {
		area = DefaultArea
	}
	students := "unknown"
	if d.NumStudents != nil {
		students = fmt.Sprint(d.NumStudents)
	}
	classID := d.ClassID
	if classID == "" {
		classID = "unknown"
	}

	for _, b := range []struct{ name, value string }{
		{"class_id", classID},
		{"num_students", students},
		{"deficient_area", area},
		{"emt1", percent(d.EMT1Avg)},
		{"emt2", percent(d.EMT2Avg)},
		{"emt3", percent(d.EMT3Avg)},
		{"emt4", percent(d.EMT4Avg)},
		{"strategies", c.strategiesFor(area)},
	} {
		var err error
		if p, err = p.BindText(b.name, b.value); err != nil {
			return "", err
		}
	}
	return p.Build()
}

// Intervention renders an intervention prompt with DefaultCatalog.
func Intervention(provider string, d InterventionData) (string, error) {
	return DefaultCatalog.Intervention(provider, d)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
