package cliutil

import "github.com/hatsunemiku3939/cliutil/pkg/jsonschema"

// ValidateOption configures a single ValidateJSON call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	validator jsonschema.Validator
}

func newValidateConfig(opts []ValidateOption) validateConfig {
	cfg := validateConfig{validator: jsonschema.NewDraft4Validator()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithValidator substitutes the schema engine. The default is the Draft-04
// gojsonschema engine.
func WithValidator(v jsonschema.Validator) ValidateOption {
	return func(c *validateConfig) {
		if v != nil {
			c.validator = v
		}
	}
}
