// Package schema provides JSON schema generation for runtime configuration.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/kaleidort/kaleidort/domain/entities"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses invopop/jsonschema to reflect on the struct and produce a
// Draft 2020-12 schema.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		Anonymous:      true,
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// ConfigSchema returns the JSON schema of the runtime config file.
func ConfigSchema() ([]byte, error) {
	return GenerateSchema(&entities.Config{})
}
