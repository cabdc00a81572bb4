// Package jsonschema adapts JSON Schema engines to a single error shape:
// a message, the absolute path to the offending value and the value itself.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationError is one violation reported by an engine.
type ValidationError struct {
	// Message is the human-readable description of the violation.
	Message string
	// Path lists the property names and array indexes from the document root
	// to the offending value. It is empty for root-level violations.
	Path []string
	// Value is the offending instance fragment, in the encoding/json value model.
	Value any
}

// Validator checks an instance against a schema. Implementations must be safe
// for concurrent use and must only return an error when the engine cannot
// process the pair; violations are reported through the slice.
type Validator interface {
	Validate(instance, schema any) ([]ValidationError, error)
}

// Normalize converts an in-memory value into the encoding/json value model
// (map[string]any, []any, string, json.Number, bool, nil).
func Normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return out, nil
}

// Encode renders v as compact JSON without HTML escaping.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
