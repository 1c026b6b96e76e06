/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// substitute is called with each placeholder name and returns its replacement.
type substitute func(name string) (string, error)

// expand walks template once, replacing every {{name}} with the result of fn.
func expand(template string, fn substitute) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))

	rest := template
	for {
		before, after, found := strings.Cut(rest, "{{")
		sb.WriteString(before)
		if !found {
			return sb.String(), nil
		}

		inner, tail, closed := strings.Cut(after, "}}")
		if !closed {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		name := strings.TrimSpace(inner)
		if !validName(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}

		val, err := fn(name)
		if err != nil {
			return "", err
		}
		sb.WriteString(val)
		rest = tail
	}
}

func validName(s string) bool {
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_':
			return false
		}
	}
	return s != ""
}
