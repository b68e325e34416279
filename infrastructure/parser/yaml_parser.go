// Package parser decodes runtime configuration files.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kaleidort/kaleidort/domain/entities"
	"github.com/kaleidort/kaleidort/domain/ports"
	"gopkg.in/yaml.v3"
)

// YamlConfigParser implements ports.ConfigParser for YAML.
type YamlConfigParser struct{}

// NewYamlConfigParser creates a new YamlConfigParser.
func NewYamlConfigParser() ports.ConfigParser {
	return &YamlConfigParser{}
}

// Parse unmarshals YAML bytes on top of base. Unknown keys are rejected.
func (p *YamlConfigParser) Parse(data []byte, base entities.Config) (*entities.Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ParseDocument unmarshals YAML into plain maps and slices so it can be
// checked against a JSON schema. An empty document yields an empty object.
func (p *YamlConfigParser) ParseDocument(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return normalize(doc), nil
}

// normalize converts YAML scalars to the types JSON decoding would produce.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return v
	}
}
