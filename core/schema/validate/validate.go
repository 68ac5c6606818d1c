package validate

import (
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"

	schematrace "github.com/davidahmann/tracelog/core/schema/v1/trace"
)

// Validator checks JSON documents against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	traceRecordOnce      sync.Once
	traceRecordValidator *Validator
	traceRecordErr       error
)

// Compile builds a Validator from raw schema JSON.
func Compile(schemaJSON []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// TraceRecord returns the shared validator for trace record lines.
func TraceRecord() (*Validator, error) {
	traceRecordOnce.Do(func() {
		traceRecordValidator, traceRecordErr = Compile(schematrace.RecordSchema)
	})
	return traceRecordValidator, traceRecordErr
}

func (v *Validator) ValidateJSON(data []byte) error {
	result := v.schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
