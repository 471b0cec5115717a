package schema

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonschema"
)

// Validator wraps a compiled JSON Schema for validation
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles a JSON Schema and returns a validator
//
// Args:
//   - schema: a Node, map[string]interface{}, []byte, string, or any JSON-serializable type
//
// Usage:
//
//	validator, err := schema.New(rag.PipelineSchema)
//	if err := validator.Validate(data); err != nil {
//	    log.Warn("pipeline: %s", err)
//	}
func New(schema interface{}) (*Validator, error) {
	var schemaBytes []byte
	var err error

	switch v := schema.(type) {
	case Node:
		schemaBytes, err = jsoniter.Marshal(Document(v))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
	case string:
		schemaBytes = []byte(v)
	case []byte:
		schemaBytes = v
	default:
		schemaBytes, err = jsoniter.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
	}

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(schemaBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON Schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate validates data against the compiled JSON Schema
// Returns nil if data is valid, error with validation details otherwise
func (v *Validator) Validate(data interface{}) error {
	result := v.schema.Validate(data)
	if result.IsValid() {
		return nil
	}

	// Keywords are sorted so the message is stable
	keys := make([]string, 0, len(result.Errors))
	for keyword := range result.Errors {
		keys = append(keys, keyword)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, keyword := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", keyword, result.Errors[keyword].Message))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateData validates data against a schema (one-shot validation)
func ValidateData(schema interface{}, data interface{}) error {
	validator, err := New(schema)
	if err != nil {
		return err
	}
	return validator.Validate(data)
}
