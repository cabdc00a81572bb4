package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	compilerResource   = "schema.json"
	missingPropsPrefix = "missing properties: "
)

// CompilerValidator validates with santhosh-tekuri/jsonschema using the
// Draft-04 vocabulary. It reports leaf causes only and splits a
// "missing properties" cause into one required-property error per name, so
// both engines feed the reporter the same shapes.
type CompilerValidator struct{}

// NewCompilerValidator returns the santhosh-backed engine.
func NewCompilerValidator() CompilerValidator {
	return CompilerValidator{}
}

// Validate implements Validator.
func (CompilerValidator) Validate(instance, schema any) ([]ValidationError, error) {
	rawSchema, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidationSystem, err)
	}
	doc, err := Normalize(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidationSystem, err)
	}

	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft4
	if err := compiler.AddResource(compilerResource, bytes.NewReader(rawSchema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationSystem, err)
	}
	compiled, err := compiler.Compile(compilerResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationSystem, err)
	}

	err = compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *santhosh.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationSystem, err)
	}

	var out []ValidationError
	for _, leaf := range leaves(ve) {
		path := pointerPath(leaf.InstanceLocation)
		value := lookup(doc, path)
		if names, ok := missingProperties(leaf.Message); ok {
			for _, name := range names {
				out = append(out, ValidationError{
					Message: strconv.Quote(name) + " is a required property",
					Path:    path,
					Value:   value,
				})
			}
			continue
		}
		out = append(out, ValidationError{Message: leaf.Message, Path: path, Value: value})
	}
	return out, nil
}

func leaves(ve *santhosh.ValidationError) []*santhosh.ValidationError {
	if len(ve.Causes) == 0 {
		return []*santhosh.ValidationError{ve}
	}
	var out []*santhosh.ValidationError
	for _, cause := range ve.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

// missingProperties splits `missing properties: 'a', 'b'` into the raw names.
func missingProperties(msg string) ([]string, bool) {
	rest, ok := strings.CutPrefix(msg, missingPropsPrefix)
	if !ok {
		return nil, false
	}
	var names []string
	for rest != "" {
		name, tail, ok := unquoteName(rest)
		if !ok {
			return nil, false
		}
		names = append(names, name)
		rest = strings.TrimPrefix(tail, ", ")
	}
	return names, len(names) > 0
}

// unquoteName reads one single-quoted name from the front of s and returns it
// with the remainder. Names use Go escapes with \' for a quote.
func unquoteName(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "'") {
		return "", "", false
	}
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '\'':
			inner := strings.ReplaceAll(s[1:i], `\'`, `'`)
			inner = strings.ReplaceAll(inner, `"`, `\"`)
			name, err := strconv.Unquote(`"` + inner + `"`)
			if err != nil {
				return "", "", false
			}
			return name, s[i+1:], true
		}
	}
	return "", "", false
}

// pointerPath decodes an RFC 6901 pointer into path segments.
func pointerPath(pointer string) []string {
	if !strings.HasPrefix(pointer, "/") {
		return nil
	}
	segments := strings.Split(pointer[1:], "/")
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return segments
}

func lookup(doc any, path []string) any {
	cur := doc
	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}
