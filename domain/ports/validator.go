package ports

import "github.com/kaleidort/kaleidort/domain/entities"

// ConfigValidator validates runtime configuration.
type ConfigValidator interface {
	// ValidateDocument checks a decoded config document against the config schema.
	ValidateDocument(doc any) error

	// ValidateConfig checks the typed config's field constraints.
	ValidateConfig(cfg *entities.Config) error
}
