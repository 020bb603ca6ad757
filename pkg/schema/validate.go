package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed scenario.schema.json
var scenarioSchema []byte

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// Source returns the JSON schema scenario documents are checked against.
func Source() []byte {
	out := make([]byte, len(scenarioSchema))
	copy(out, scenarioSchema)
	return out
}

// Validate checks a decoded scenario document (as produced by a YAML or
// JSON decoder into any) against the scenario schema. All failures are
// reported together.
func Validate(document any) error {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(scenarioSchema))
	})
	if compileErr != nil {
		return fmt.Errorf("failed to load scenario schema: %w", compileErr)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, &ValidationError{
			Field:  re.Field(),
			Reason: re.Description(),
			Value:  re.Value(),
		})
	}
	return &AggregateError{Errors: errs}
}
