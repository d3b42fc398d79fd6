// Package schema validates chat component JSON against the component schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed component.schema.json
var componentSchema []byte

var (
	componentSchemaLoader     *gojsonschema.Schema
	componentSchemaLoaderErr  error
	componentSchemaLoaderOnce sync.Once
)

// ValidationError lists every way a document broke the schema.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "component failed schema validation"
	}
	return strings.Join(e.Issues, "; ")
}

// Raw returns the embedded schema document.
func Raw() []byte {
	return componentSchema
}

func loadComponentSchema() (*gojsonschema.Schema, error) {
	componentSchemaLoaderOnce.Do(func() {
		componentSchemaLoader, componentSchemaLoaderErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(componentSchema))
	})
	return componentSchemaLoader, componentSchemaLoaderErr
}

// Validate checks raw JSON against the component schema. A document that
// parses but does not match returns a *ValidationError.
func Validate(raw []byte) error {
	s, err := loadComponentSchema()
	if err != nil {
		return fmt.Errorf("schema: load component schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema: validate: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &ValidationError{Issues: issues}
}

// ValidateValue marshals v and validates the result.
func ValidateValue(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("schema: marshal: %w", err)
	}
	return Validate(raw)
}
