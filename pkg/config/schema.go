package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

// validateSchema checks the raw config map against the embedded schema so
// typos and wrongly typed values fail before unmarshaling silently drops
// them.
func validateSchema(raw map[string]interface{}) error {
	compiler := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("parsing config schema: %w", err)
	}
	if err := compiler.AddResource("config.schema.json", doc); err != nil {
		return fmt.Errorf("registering config schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}
	if err := schema.Validate(normalize(raw)); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// normalize converts koanf's raw map into plain JSON-style values the
// validator understands.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
