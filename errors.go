package cliutil

import (
	"errors"
	"fmt"
)

var (
	ErrFile         = errors.New("file error")
	ErrParse        = errors.New("error loading JSON")
	ErrSchema       = errors.New("schema error")
	ErrIntegerParse = errors.New("error parsing string as int")
	ErrRender       = errors.New("template render error")
	ErrLogLevel     = errors.New("Log level set to an unknown value")
)

// snippetLimit bounds how much of the offending input a ParseError keeps.
const snippetLimit = 80

// FileError reports a path that is missing, not a regular file, or unreadable.
type FileError struct {
	Path string
	Msg  string
	Err  error
}

func (e *FileError) Error() string {
	return e.Msg
}

func (e *FileError) Unwrap() []error {
	return []error{ErrFile, e.Err}
}

// ParseError reports text that is not valid JSON. Input holds a snippet of it.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error loading JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// SchemaError reports that the validation engine could not process the
// schema/instance pair. A schema violation is never a SchemaError.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unable to validate against schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchema, e.Err}
}

// IntegerParseError reports a string that is not a base-10 integer.
type IntegerParseError struct {
	Input string
	Err   error
}

func (e *IntegerParseError) Error() string {
	return "Error parsing string as int"
}

func (e *IntegerParseError) Unwrap() []error {
	return []error{ErrIntegerParse, e.Err}
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= snippetLimit {
		return s
	}
	return string(r[:snippetLimit]) + "..."
}
