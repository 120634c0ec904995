// Package schema validates submitted dataset metadata documents against the
// catalog's JSON schema before any write reaches the store.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"catalog/internal/shared/logger"
)

var errorPrinter = message.NewPrinter(language.English)

// Validator checks metadata documents against one compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
	logger logger.Interface
}

// NewValidator compiles the schema at the given path.
func NewValidator(schemaPath string, logger logger.Interface) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile metadata schema %q: %w", schemaPath, err)
	}
	return &Validator{schema: compiled, logger: logger}, nil
}

// Validate returns every schema violation found in the document, not just the
// first. An empty slice means the document is valid.
func (v *Validator) Validate(metadata json.RawMessage) []string {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(metadata))
	if err != nil {
		return []string{fmt.Sprintf("metadata is not valid JSON: %v", err)}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var violations []string
	collectLeafCauses(validationErr, &violations)
	v.logger.Debugw("metadata failed schema validation", "violations", len(violations))
	return violations
}

// collectLeafCauses walks the cause tree and keeps only the leaves; the inner
// nodes just repeat the path to them.
func collectLeafCauses(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		location := "/"
		if len(err.InstanceLocation) > 0 {
			location = ""
			for _, segment := range err.InstanceLocation {
				location += "/" + segment
			}
		}
		*out = append(*out, fmt.Sprintf("%s: %s", location, err.ErrorKind.LocalizedString(errorPrinter)))
		return
	}
	for _, cause := range err.Causes {
		collectLeafCauses(cause, out)
	}
}
