// Package schema generates JSON schemas for plugin configuration.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema creates a JSON schema (Draft 2020-12) from a Go struct.
// Field descriptions and enums come from `jsonschema` struct tags.
// Properties without `omitempty` are listed as required.
func GenerateSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true, // Expand struct definitions inline
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}
