/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// renderer produces the text substituted for a placeholder.
type renderer func() (string, error)

func text(s string) renderer {
	return func() (string, error) { return s, nil }
}

func jsonOf(v any) renderer {
	return func() (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal JSON: %w", err)
		}
		return string(b), nil
	}
}

func yamlOf(v any) renderer {
	return func() (string, error) {
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal YAML: %w", err)
		}
		return string(b), nil
	}
}
