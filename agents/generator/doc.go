/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package generator produces candidate answers from a registry of backends.
//
// Providers are data: a Request names one, and the Generator looks it up among
// the backends registered with WithBackend. An unknown provider, an invalid
// temperature, or a failed backend call never produces a Go error. Instead
// the returned text starts with ErrorPrefix, so the calling workflow can record
// it alongside successful answers:
//
//	g, err := generator.New(generator.WithBackend(generator.Gemini, b))
//	if err != nil {
//		return err
//	}
//	text := g.Generate(ctx, generator.Request{
//		Prompt:      prompt,
//		Provider:    generator.Gemini,
//		Model:       "gemini-2.5-flash",
//		Temperature: 0.5,
//	})
//
// When Request.Schema is set it is flattened for the backend, and the first
// JSON object found in the reply is returned in place of the raw text.
package generator
