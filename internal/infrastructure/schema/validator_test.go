package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/shared/logger"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"counts": {
			"type": "object",
			"properties": {
				"donors": {"type": "integer", "minimum": 0}
			}
		}
	},
	"required": ["name"]
}`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	v, err := NewValidator(path, logger.NewLogger())
	require.NoError(t, err)
	return v
}

func TestValidate_ConformingDocument(t *testing.T) {
	v := newTestValidator(t)
	violations := v.Validate(json.RawMessage(`{"name":"study","counts":{"donors":5}}`))
	assert.Empty(t, violations)
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	v := newTestValidator(t)
	violations := v.Validate(json.RawMessage(`{"counts":{"donors":-1}}`))
	require.Len(t, violations, 2)
}

func TestValidate_InvalidJSON(t *testing.T) {
	v := newTestValidator(t)
	violations := v.Validate(json.RawMessage(`{not json`))
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "not valid JSON")
}

func TestNewValidator_MissingFile(t *testing.T) {
	_, err := NewValidator("/nonexistent/schema.json", logger.NewLogger())
	require.Error(t, err)
}
