/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package validate checks the shape of generated answers against a JSON schema
// reflected from ModelAnswer.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chainguard.dev/evalkit/agents/schema"
	"github.com/xeipuuv/gojsonschema"
)

// ModelAnswer is the expected shape of a generated answer. Extra fields are allowed.
type ModelAnswer struct {
	Content   string `json:"content" jsonschema:"required,minLength=1,description=The main content of the answer"`
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Optional reasoning or explanation"`
}

// Status strings recorded alongside each evaluation.
const (
	StatusValid   = "Valid"
	StatusInvalid = "Invalid"
	StatusError   = "Error"
)

// Error lists every schema violation found in a document.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return strings.Join(e.Problems, "; ")
}

var answerSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	s, err := schema.ReflectType[ModelAnswer]()
	if err != nil {
		return nil, err
	}
	// The reflected draft 2020-12 identifier is not known to the validator;
	// the keywords used here are draft-7 compatible.
	delete(s, "$schema")
	delete(s, "$id")
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(s))
})

// Answer validates a raw generated answer as the content of a ModelAnswer.
func Answer(answer string) error {
	doc, err := json.Marshal(map[string]string{"content": answer})
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	return Document(doc)
}

// Document validates a JSON document against the ModelAnswer schema.
// Schema violations are reported as *Error.
func Document(doc []byte) error {
	s, err := answerSchema()
	if err != nil {
		return fmt.Errorf("load answer schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &Error{Problems: problems}
}

// Status renders the outcome of Answer or Document for display and logging.
func Status(err error) string {
	if err == nil {
		return StatusValid
	}
	var verr *Error
	if errors.As(err, &verr) {
		return fmt.Sprintf("%s: %s", StatusInvalid, verr)
	}
	return fmt.Sprintf("%s: %v", StatusError, err)
}
