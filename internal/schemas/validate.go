// Package schemas provides JSON Schema validation for the records the scraper emits.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

// ProfileRecordSchema is the JSON Schema of a serialized types.ProfileRecord.
//
//go:embed profile_record.schema.json
var ProfileRecordSchema string

// Violation is one schema rule a document broke.
type Violation struct {
	Field   string // dotted path, "(root)" for the document itself
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("validation failed (%d): %s", len(e.Violations), strings.Join(parts, "; "))
}

// LoadError means the schema or the document could not be read as JSON at all.
type LoadError struct {
	What  string // "schema" or "document"
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.What, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var (
	recordSchemaOnce sync.Once
	recordSchema     *gojsonschema.Schema
	recordSchemaErr  error
)

// compiledRecordSchema compiles ProfileRecordSchema on first use.
func compiledRecordSchema() (*gojsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		recordSchema, recordSchemaErr = compile(ProfileRecordSchema)
	})
	return recordSchema, recordSchemaErr
}

func compile(schemaContent string) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return nil, &LoadError{What: "schema", Cause: err}
	}
	return schema, nil
}

func check(schema *gojsonschema.Schema, document []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &LoadError{What: "document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Violations = append(verr.Violations, Violation{Field: field, Message: desc.Description()})
	}
	return verr
}

// ValidateJSONString validates a JSON document against an arbitrary schema.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := compile(schemaContent)
	if err != nil {
		return err
	}
	return check(schema, []byte(jsonContent))
}

// ValidateRecordJSON validates a serialized record against ProfileRecordSchema.
func ValidateRecordJSON(data []byte) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}
	return check(schema, data)
}

// ValidateRecord serializes record and validates it. It returns the JSON on success so
// callers can print exactly what was checked.
func ValidateRecord(record types.ProfileRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := ValidateRecordJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}
