package forms

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/form.schema.json
var formSchemaJSON string

var (
	schemaOnce sync.Once
	formSchema *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		formSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(formSchemaJSON))
	})
	return formSchema, schemaErr
}

// ValidatePayload checks a raw create or update body against the form schema.
// It returns one message per violation, prefixed with the offending path.
func ValidatePayload(raw []byte) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("load form schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return []string{"(root): " + err.Error()}, nil
	}
	if result.Valid() {
		return nil, nil
	}
	out := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out = append(out, field+": "+desc.Description())
	}
	return out, nil
}
