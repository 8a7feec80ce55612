package config

import (
	"github.com/grovetools/hooks/schema"
)

// SchemaValidator validates a manifest against the embedded JSON Schema.
// This is a wrapper around schema.Validator so callers only importing
// config do not need to know about the schema package.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates manifest data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
