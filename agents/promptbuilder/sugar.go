/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Must panics if err is non-nil. It is meant for package-level templates:
//
//	var greeting = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is Must(NewPrompt(template)).
func MustNewPrompt(template string) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindText is Must(p.BindText(name, s)).
func (p *Prompt) MustBindText(name, s string) *Prompt {
	return Must(p.BindText(name, s))
}

// MustBindJSON is Must(p.BindJSON(name, v)).
func (p *Prompt) MustBindJSON(name string, v any) *Prompt {
	return Must(p.BindJSON(name, v))
}

// MustBindYAML is Must(p.BindYAML(name, v)).
func (p *Prompt) MustBindYAML(name string, v any) *Prompt {
	return Must(p.BindYAML(name, v))
}
