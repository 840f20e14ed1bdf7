package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// mappingSchemaJSON is the shape of a JSON mapping config: a non-empty
// array of distinct, non-empty field names under "fields".
const mappingSchemaJSON = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"fields": {
			"type": "array",
			"minItems": 1,
			"uniqueItems": true,
			"items": {"type": "string", "minLength": 1}
		}
	},
	"required": ["fields"]
}`

// The schema is fixed, so it compiles once at load.
var mappingSchema = jsonschema.MustCompileString("mapping.json", mappingSchemaJSON)

// validateMapping checks a JSON mapping document against the fixed schema.
func validateMapping(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal mapping: %w", err)
	}
	if err := mappingSchema.Validate(v); err != nil {
		return fmt.Errorf("mapping does not match schema: %w", err)
	}
	return nil
}
