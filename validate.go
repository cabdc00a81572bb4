// Package cliutil holds the shared helpers of the cluster CLI: JSON Schema
// validation with stable, human-readable reports, JSON loading, mustache
// rendering, executable lookup and logger setup.
package cliutil

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/hatsunemiku3939/cliutil/pkg/jsonschema"
)

const (
	requiredSuffix = " is a required property"
	reportSep      = "\n\n"
)

// ValidateJSON validates instance against a Draft-04 schema and returns one
// formatted entry per violation, ordered by cleaned message text. A valid
// instance yields an empty slice. Only an engine failure returns an error,
// as a *SchemaError.
func ValidateJSON(ctx context.Context, instance, schema any, opts ...ValidateOption) ([]string, error) {
	cfg := newValidateConfig(opts)
	logger := zerolog.Ctx(ctx)

	raw, err := cfg.validator.Validate(instance, schema)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to run schema validation")
		return nil, &SchemaError{Err: err}
	}

	cleaned := make([]jsonschema.ValidationError, len(raw))
	for i, ve := range raw {
		ve.Message = CleanMessage(ve.Message)
		cleaned[i] = ve
	}
	slices.SortStableFunc(cleaned, func(a, b jsonschema.ValidationError) int {
		return strings.Compare(a.Message, b.Message)
	})

	out := make([]string, 0, len(cleaned))
	for _, ve := range cleaned {
		out = append(out, formatCleaned(ve))
	}
	logger.Debug().Int("violations", len(out)).Msg("Validated JSON instance")
	return out, nil
}

// ValidateJSONFiles reads and parses both documents, then calls ValidateJSON.
func ValidateJSONFiles(ctx context.Context, instancePath, schemaPath string, opts ...ValidateOption) ([]string, error) {
	schema, err := loadJSONFile(ctx, schemaPath)
	if err != nil {
		return nil, err
	}
	instance, err := loadJSONFile(ctx, instancePath)
	if err != nil {
		return nil, err
	}
	return ValidateJSON(ctx, instance, schema, opts...)
}

func loadJSONFile(ctx context.Context, path string) (any, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadJSONString(ctx, text)
}

// FormatValidationError renders a single violation. Missing required
// properties collapse to one line; everything else gets Path and Value lines,
// with Path omitted at the document root.
func FormatValidationError(ve jsonschema.ValidationError) string {
	ve.Message = CleanMessage(ve.Message)
	return formatCleaned(ve)
}

func formatCleaned(ve jsonschema.ValidationError) string {
	if prop, ok := requiredProperty(ve.Message); ok {
		return fmt.Sprintf("Error: missing required property %s.", prop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", ve.Message)
	if len(ve.Path) > 0 {
		fmt.Fprintf(&b, "Path: %s\n", strings.Join(ve.Path, "."))
	}
	value, err := jsonschema.Encode(ve.Value)
	if err != nil {
		value = fmt.Sprint(ve.Value)
	}
	b.WriteString("Value: ")
	b.WriteString(value)
	return b.String()
}

// requiredProperty extracts X from the first line reading "X is a required property".
func requiredProperty(msg string) (string, bool) {
	for _, line := range strings.Split(msg, "\n") {
		if idx := strings.LastIndex(line, requiredSuffix); idx > 0 {
			return line[:idx], true
		}
	}
	return "", false
}

// CleanMessage removes the "u" prefix some engines leave on quoted strings
// (u'name'). A marker is only removed when it sits directly before a single
// quote, at the start of the message or after whitespace or an opening
// bracket. Clean messages are returned unchanged.
func CleanMessage(msg string) string {
	return stripInteriorMarkers(stripLeadingMarker(msg))
}

func stripLeadingMarker(msg string) string {
	if strings.HasPrefix(msg, "u'") {
		return msg[1:]
	}
	return msg
}

func stripInteriorMarkers(msg string) string {
	if !strings.Contains(msg, "u'") {
		return msg
	}
	runes := []rune(msg)
	var b strings.Builder
	b.Grow(len(msg))
	for i, r := range runes {
		if r == 'u' && i > 0 && i+1 < len(runes) && runes[i+1] == '\'' && opensValue(runes[i-1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func opensValue(r rune) bool {
	switch r {
	case '[', '(', '{':
		return true
	}
	return unicode.IsSpace(r)
}

// ListToErr joins formatted entries into one report, separated by a blank line.
func ListToErr(errs []string) string {
	return strings.Join(errs, reportSep)
}
