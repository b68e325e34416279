// Package config loads runtime configuration and assembles the intrinsic
// registry it describes.
package config

import (
	"fmt"
	"os"

	"github.com/kaleidort/kaleidort/application/validation"
	"github.com/kaleidort/kaleidort/domain/entities"
	"github.com/kaleidort/kaleidort/domain/ports"
	"github.com/kaleidort/kaleidort/infrastructure/parser"
)

// Loader reads, validates and decodes config files.
type Loader struct {
	parser    ports.ConfigParser
	validator ports.ConfigValidator
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParser overrides the config parser (default: YAML).
func WithParser(p ports.ConfigParser) LoaderOption {
	return func(l *Loader) {
		l.parser = p
	}
}

// WithValidator overrides the config validator.
func WithValidator(v ports.ConfigValidator) LoaderOption {
	return func(l *Loader) {
		l.validator = v
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		parser:    parser.NewYamlConfigParser(),
		validator: validation.NewConfigValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the config file at path. An empty path yields the validated defaults.
func (l *Loader) Load(path string) (*entities.Config, error) {
	if path == "" {
		return l.LoadBytes(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return l.LoadBytes(data)
}

// LoadBytes validates data against the config schema, decodes it on top of
// the defaults and checks the resulting field constraints.
func (l *Loader) LoadBytes(data []byte) (*entities.Config, error) {
	doc, err := l.parser.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	if err := l.validator.ValidateDocument(doc); err != nil {
		return nil, err
	}

	cfg, err := l.parser.Parse(data, entities.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := l.validator.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path with the default Loader.
func Load(path string) (*entities.Config, error) {
	return NewLoader().Load(path)
}
