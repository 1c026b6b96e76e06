/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googlebackend implements backend.Interface on top of the Gemini API
through google.golang.org/genai.

# Usage

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}

	b, err := googlebackend.New(client,
		googlebackend.WithMaxOutputTokens(4096),
	)
	if err != nil {
		return err
	}

	resp, err := b.Generate(ctx, "gemini-2.5-flash", prompt, backend.Options{Temperature: 0.5})

When Options.ResponseSchema is set the request asks for application/json output
and passes the schema, converted with schema.ToGenAI, as the response schema.

Token usage from each response is recorded through the metrics package and
returned on backend.Response.
*/
package googlebackend
