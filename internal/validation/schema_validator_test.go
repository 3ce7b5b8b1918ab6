package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"id": {"type": "integer", "minimum": 1},
		"name": {"type": "string", "minLength": 1},
		"weight": {"type": "number", "minimum": 0}
	},
	"required": ["id", "name"]
}`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "item.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(itemSchema), 0644))
	return path
}

func TestValidateBytes(t *testing.T) {
	schemaPath := writeSchema(t)
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{"valid item", `{"id": 1, "name": "Blue Cap", "weight": 50}`, false},
		{"optional field omitted", `{"id": 2, "name": "Red Scarf"}`, false},
		{"missing required field", `{"id": 3}`, true},
		{"wrong type", `{"id": "one", "name": "Blue Cap"}`, true},
		{"negative weight", `{"id": 1, "name": "Blue Cap", "weight": -5}`, true},
		{"malformed json", `{"id": 1,`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	schemaPath := writeSchema(t)
	dataPath := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"id": 1, "name": "Blue Cap"}`), 0644))

	v := NewSchemaValidator()
	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))
	assert.Error(t, v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), schemaPath))
}

func TestValidationErrorNamesLocation(t *testing.T) {
	schemaPath := writeSchema(t)
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{"id": 1, "name": "Blue Cap", "weight": -5}`), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/weight")
}

func TestSchemaCaching(t *testing.T) {
	schemaPath := writeSchema(t)
	v := NewSchemaValidator()

	require.NoError(t, v.ValidateBytes([]byte(`{"id": 1, "name": "a"}`), schemaPath))

	// Second validation hits the compiled-schema cache even if the
	// file disappears.
	require.NoError(t, os.Remove(schemaPath))
	assert.NoError(t, v.ValidateBytes([]byte(`{"id": 2, "name": "b"}`), schemaPath))
}
