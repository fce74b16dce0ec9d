package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

const testSchema = `{
  "type": "object",
  "required": ["conversation", "callback_note"],
  "properties": {
    "conversation": {"type": "array", "minItems": 1},
    "callback_note": {
      "type": "object",
      "required": ["wants_callback"],
      "properties": {"wants_callback": {"type": "boolean"}}
    }
  }
}`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New([]byte(testSchema), logger.Discard())
	require.NoError(t, err)
	return v
}

func TestValidate(t *testing.T) {
	v := newTestValidator(t)

	ok, reasons := v.Validate(types.CallScript{
		"conversation":  []any{map[string]any{"speaker": "Agent", "text": "Hallo"}},
		"callback_note": map[string]any{"wants_callback": false},
		"call_id":       "extra keys are allowed",
	})
	assert.True(t, ok)
	assert.Empty(t, reasons)

	ok, reasons = v.Validate(map[string]any{
		"conversation":  []any{},
		"callback_note": map[string]any{"wants_callback": "no"},
	})
	assert.False(t, ok)
	assert.Len(t, reasons, 2)
}

func TestCheckRejectsMissingFields(t *testing.T) {
	v := newTestValidator(t)
	assert.False(t, v.Check(map[string]any{"conversation": []any{"x"}}))
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	_, err := New([]byte(`{"type": 12}`), logger.Discard())
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	v, err := Load(path, logger.Discard())
	require.NoError(t, err)
	assert.JSONEq(t, testSchema, v.Raw())

	_, err = Load(filepath.Join(dir, "missing.json"), logger.Discard())
	var loadErr *dataset.ResourceLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "missing.json")
}

func TestBundledSchemaAcceptsMockScript(t *testing.T) {
	v, err := Load(filepath.Join("..", "..", "data", "schema", "call_script.json"), logger.Discard())
	require.NoError(t, err)

	ok, reasons := v.Validate(map[string]any{
		"conversation": []any{
			map[string]any{"speaker": "Agent", "text": "Guten Tag"},
			map[string]any{"speaker": "Client", "text": "Hallo"},
		},
		"callback_note": map[string]any{
			"person_number":  "123.456.789.0",
			"phone_number":   "079 111 11 11",
			"message":        "ok",
			"resolved_items": "Hypotheken",
			"action_items":   nil,
			"wants_callback": false,
			"phone_private":  "0799111010",
			"remark":         nil,
		},
	})
	assert.True(t, ok, reasons)
}
