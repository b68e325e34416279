package ports

import "github.com/kaleidort/kaleidort/domain/entities"

// ConfigParser parses raw config bytes into a Config.
type ConfigParser interface {
	// Parse decodes data on top of base and returns the result.
	Parse(data []byte, base entities.Config) (*entities.Config, error)

	// ParseDocument decodes data into a generic document for schema validation.
	ParseDocument(data []byte) (any, error)
}
