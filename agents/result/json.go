/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoObject is returned by Extract when the text holds no valid JSON object.
var ErrNoObject = errors.New("no JSON object found in response")

const fence = "```"

// ExtractObject returns the first balanced top-level JSON object in text.
// The boolean is false when no valid object could be found.
func ExtractObject(text string) (string, bool) {
	cleaned := stripFence(strings.TrimSpace(text))

	start := strings.IndexByte(cleaned, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(cleaned); i++ {
		switch cleaned[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := cleaned[start : i+1]
				if !json.Valid([]byte(candidate)) {
					return "", false
				}
				return candidate, true
			}
		}
	}
	return "", false
}

// stripFence removes a leading ``` line and, if present, a trailing ``` fence.
func stripFence(text string) string {
	if !strings.HasPrefix(text, fence) {
		return text
	}
	if _, rest, ok := strings.Cut(text, "\n"); ok {
		text = rest
	}
	if strings.HasSuffix(text, fence) {
		text = strings.TrimSuffix(text, fence)
	}
	return text
}

// Extract locates the first JSON object in text and unmarshals it into T.
func Extract[T any](text string) (T, error) {
	var out T

	obj, ok := ExtractObject(text)
	if !ok {
		return out, ErrNoObject
	}
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return out, fmt.Errorf("decoding extracted object: %w", err)
	}
	return out, nil
}
