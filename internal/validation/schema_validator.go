package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator checks JSON config files against JSON schemas before
// they reach the parsers. Catching a malformed catalog here produces a
// readable startup error instead of a zero-weight draw table.
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
}

type validator struct {
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates a JSON file against a schema file
func (v *validator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	return v.ValidateBytes(data, schemaPath)
}

// ValidateBytes validates JSON data bytes against a schema file
func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.loadSchema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	var jsonData interface{}
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(jsonData); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// loadSchema loads and compiles a schema, caching the result
func (v *validator) loadSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schema, ok := v.schemas[schemaPath]; ok {
		return schema, nil
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schemaJSON interface{}
	if err := json.Unmarshal(schemaData, &schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	if err := v.compiler.AddResource(schemaPath, schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[schemaPath] = schema

	return schema, nil
}

// formatValidationError formats validation errors to be user-friendly
func formatValidationError(err error) error {
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		var errors []string
		collectErrors(validationErr, &errors)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return fmt.Errorf("validation error: %w", err)
}

// collectErrors recursively collects all validation errors
func collectErrors(err *jsonschema.ValidationError, errors *[]string) {
	msg := formatError(err)
	if msg != "" {
		*errors = append(*errors, msg)
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errors)
	}
}

// formatError formats a single validation error
func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		keywordPath := err.ErrorKind.KeywordPath()
		if len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
