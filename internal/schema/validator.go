// Package schema is the strict acceptance gate for generated call scripts.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/logger"
)

// Validator checks documents against one compiled JSON schema. It is read-only
// after construction.
type Validator struct {
	compiled *gojsonschema.Schema
	raw      json.RawMessage
	log      *logger.Logger
}

// New compiles a schema document.
func New(raw []byte, log *logger.Logger) (*Validator, error) {
	if log == nil {
		log = logger.New()
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{compiled: compiled, raw: append(json.RawMessage(nil), raw...), log: log}, nil
}

// Load reads and compiles the schema file at path.
func Load(path string, log *logger.Logger) (*Validator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &dataset.ResourceLoadError{Path: path, Err: err}
	}
	v, err := New(raw, log)
	if err != nil {
		return nil, &dataset.ResourceLoadError{Path: path, Err: err}
	}
	return v, nil
}

// Validate reports whether doc conforms and, if not, why.
func (v *Validator) Validate(doc any) (bool, []string) {
	result, err := v.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return false, []string{err.Error()}
	}
	if result.Valid() {
		return true, nil
	}
	reasons := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		reasons[i] = desc.String()
	}
	return false, reasons
}

// Check is the gate: it logs the reasons for a failure at warn level and
// returns only the verdict. There is no partial acceptance.
func (v *Validator) Check(doc any) bool {
	ok, reasons := v.Validate(doc)
	if !ok {
		v.log.WithField("component", "schema").
			WithField("errors", reasons).
			Warn("document failed schema validation")
	}
	return ok
}

// Raw returns the schema text for binding into prompts.
func (v *Validator) Raw() string {
	return string(v.raw)
}
