/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder fills {{name}} placeholders in judge and generation
prompts.

Templates are parsed once. Each placeholder must then be bound exactly once
before Build succeeds, so a forgotten field surfaces as an error instead of a
literal "{{field}}" reaching the model.

	p := promptbuilder.MustNewPrompt(`Question:
	{{question}}

	Answer:
	{{answer}}`)

	text, err := p.
		MustBindText("question", question).
		MustBindText("answer", answer).
		Build()

Substitution is single pass. A bound value that itself contains "{{x}}" is
emitted verbatim and never expanded.

# Binding Methods

	BindText  inserts a string as-is
	BindJSON  inserts indented JSON
	BindYAML  inserts YAML

Every Bind method returns a new Prompt; the receiver is left unchanged, so a
parsed template can be shared by concurrent callers.

Placeholder names start with a letter and continue with letters, digits or
underscores. Whitespace inside the braces is ignored.
*/
package promptbuilder
