package jsonschema

import "errors"

var (
	// ErrSchemaValidationSystem marks a failure of the engine itself, as opposed to a reported violation.
	ErrSchemaValidationSystem = errors.New("schema validation system error")
	// ErrUnsupportedValue is returned when an instance or schema cannot be expressed as JSON.
	ErrUnsupportedValue = errors.New("value is not representable as JSON")
)
