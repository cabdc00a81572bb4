package jsonschema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// contextSeparator splits gojsonschema context chains. Property names may
// contain "." but practically never NUL.
const contextSeparator = "\x00"

// rootContext is the head gojsonschema gives every context chain.
const rootContext = "(root)"

// Draft4Validator validates with gojsonschema pinned to Draft-04 semantics,
// whatever "$schema" the document declares.
type Draft4Validator struct{}

// NewDraft4Validator returns the default engine.
func NewDraft4Validator() Draft4Validator {
	return Draft4Validator{}
}

// Validate implements Validator.
func (Draft4Validator) Validate(instance, schema any) ([]ValidationError, error) {
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft4
	loader.AutoDetect = false

	compiled, err := loader.Compile(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationSystem, err)
	}
	result, err := compiled.Validate(gojsonschema.NewGoLoader(instance))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationSystem, err)
	}
	if result.Valid() {
		return nil, nil
	}

	out := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		out = append(out, ValidationError{
			Message: describe(re),
			Path:    contextPath(re.Context()),
			Value:   re.Value(),
		})
	}
	return out, nil
}

// contextPath turns a "(root).a.0" context chain into ["a", "0"].
func contextPath(ctx *gojsonschema.JsonContext) []string {
	if ctx == nil {
		return nil
	}
	segments := strings.Split(ctx.String(contextSeparator), contextSeparator)
	if len(segments) > 0 && segments[0] == rootContext {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}
