/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"
	"strconv"
	"strings"

	"chainguard.dev/evalkit/agents/promptbuilder"
)

const rubricHeader = `You are an expert evaluator assessing the quality of AI-generated answers.

**Context/Question:**
---
{{question}}
---

**Answer:**
---
{{answer}}
---

Please evaluate the answer based on the following criteria on a scale of 1 to 10:

1.  **Relevance**: How relevant is the response to the given input and context?
    - 1: Completely irrelevant.
    - 5: Partially relevant, but misses key aspects of the question.
    - 10: Perfectly relevant and directly addresses all parts of the question.

2.  **Clarity**: How clear and understandable is the generated output?
    - 1: Incoherent and impossible to understand.
    - 5: Understandable, but requires effort to follow due to poor structure or jargon.
    - 10: Perfectly clear, concise, and easy to understand.
`

// IndividualTemplate is the rubric used by IndividualMode.
const IndividualTemplate = rubricHeader + `
Provide your evaluation in the following format:

**Relevance:** [Your detailed feedback on relevance]
**Relevance Score:** [A number from 1 to 10]

**Clarity:** [Your detailed feedback on clarity]
**Clarity Score:** [A number from 1 to 10]
`

// FullTemplate is the rubric used by FullMode.
const FullTemplate = rubricHeader + `
3.  **Consistency**: How consistent are the results across multiple runs?
    - 1: Highly inconsistent and contradictory.
    - 5: Generally consistent, but with some contradictions.
    - 10: Perfectly consistent and reliable.

4.  **Creativity/Innovation**: For creative tasks, how original or innovative is the output?
    - 1: Plagiarized or completely unoriginal.
    - 5: Some originality, but mostly derivative.
    - 10: Highly original and innovative.

Provide your evaluation in the following format:

**Relevance:** [Your detailed feedback on relevance]
**Relevance Score:** [A number from 1 to 10]

**Clarity:** [Your detailed feedback on clarity]
**Clarity Score:** [A number from 1 to 10]

**Consistency:** [Your detailed feedback on consistency]
**Consistency Score:** [A number from 1 to 10]

**Creativity/Innovation:** [Your detailed feedback on creativity]
**Creativity Score:** [A number from 1 to 10]

**Total Score:** [The average of all scores, from 1 to 10]
`

// BatchGuide summarizes the batch rubric for display.
const BatchGuide = `You are an expert evaluator. Evaluate the ENTIRE batch only for Consistency and Creativity.

Definitions (batch-level):
- Consistency (1–10): How consistent are the results across multiple runs? Coherence across answers, no contradictions, stable tone/format.
- Creativity (1–10): For creative tasks, how original or innovative is the output? Originality/diversity across answers, avoids generic templates.

Provide output in exactly this format:
` + batchOutputFormat

const batchOutputFormat = `Batch Evaluation
Consistency: <brief rationale>
Consistency Score: <integer 1-10>
Creativity: <brief rationale>
Creativity Score: <integer 1-10>
`

const batchTemplate = `You are an expert evaluator. Evaluate the ENTIRE batch of input→answer pairs only for: (1) Consistency across answers and (2) Creativity/Originality across the set.

Definitions (batch-level):
- Consistency (1–10): How consistent are the results across multiple runs? Similar prompts produce coherent, non-contradictory, and stylistically aligned answers. Higher = fewer contradictions, stable reasoning, uniform formatting/terminology when appropriate.
- Creativity (1–10): For creative tasks, how original or innovative is the output? Answers demonstrate originality and non-trivial insight without being generic or templated. Higher = novel, diverse, and contextually appropriate variations.

Data ({{count}} pairs):
{{pairs}}
Instructions:
- Judge at the batch level only. Do NOT provide per-item relevance/clarity.
- Consider conflicts/contradictions, tone/format drift, and reasoning stability for Consistency.
- Consider originality, diversity of approaches, and non-generic detail for Creativity.
- Keep rationale concise (2–4 sentences each).

Output format (exactly these sections):
` + batchOutputFormat

var (
	individualPrompt = promptbuilder.MustNewPrompt(IndividualTemplate)
	fullPrompt       = promptbuilder.MustNewPrompt(FullTemplate)
	batchPrompt      = promptbuilder.MustNewPrompt(batchTemplate)
)

// PairPrompt renders the judge prompt for a single answer.
// Any mode other than IndividualMode uses the full rubric.
func PairPrompt(question, answer string, mode Mode) (string, error) {
	p := fullPrompt
	if mode == IndividualMode {
		p = individualPrompt
	}
	p, err := p.BindText("question", question)
	if err != nil {
		return "", err
	}
	p, err = p.BindText("answer", answer)
	if err != nil {
		return "", err
	}
	return p.Build()
}

// BatchPrompt renders the judge prompt enumerating pairs from 1 in order.
func BatchPrompt(pairs []Pair) (string, error) {
	blocks := make([]string, 0, len(pairs))
	for i, pair := range pairs {
		blocks = append(blocks, fmt.Sprintf("Pair %d:\nInput:\n%s\nAnswer:\n%s\n", i+1, pair.Input, pair.Answer))
	}
	body := strings.Join(blocks, "\n")

	p, err := batchPrompt.BindText("count", strconv.Itoa(len(pairs)))
	if err != nil {
		return "", err
	}
	p, err = p.BindText("pairs", body)
	if err != nil {
		return "", err
	}
	return p.Build()
}
