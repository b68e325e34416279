// Package policy implements the intrinsic allow-list.
package policy

import (
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kaleidort/kaleidort/domain/errors"
	"github.com/kaleidort/kaleidort/domain/ports"
)

// policyConfig holds configuration for the Policy.
type policyConfig struct {
	denialHandler ports.DenialHandler
}

func defaultPolicyConfig() policyConfig {
	return policyConfig{
		denialHandler: &LogDenialHandler{},
	}
}

// PolicyOption configures the Policy.
type PolicyOption func(*policyConfig)

// WithDenialHandler sets the denial handler.
func WithDenialHandler(h ports.DenialHandler) PolicyOption {
	return func(c *policyConfig) {
		c.denialHandler = h
	}
}

// Policy matches intrinsic names against glob patterns.
// A Policy with no patterns denies everything.
type Policy struct {
	config   policyConfig
	patterns []string
}

// AllowAll returns a Policy that exposes every intrinsic.
func AllowAll() *Policy {
	p, _ := New([]string{"*"})
	return p
}

// New compiles an allow-list. Every pattern must be valid doublestar syntax.
func New(patterns []string, opts ...PolicyOption) (*Policy, error) {
	cfg := defaultPolicyConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	for i, pattern := range patterns {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return nil, &errors.ConfigError{
				Field: fmt.Sprintf("allow[%d]", i),
				Err:   fmt.Errorf("invalid pattern %q", pattern),
			}
		}
	}

	return &Policy{
		config:   cfg,
		patterns: append([]string(nil), patterns...),
	}, nil
}

// Allowed reports whether name matches any pattern.
func (p *Policy) Allowed(name string) bool {
	for _, pattern := range p.patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	if p.config.denialHandler != nil {
		p.config.denialHandler.OnDenial(name)
	}
	return false
}

// Patterns returns a copy of the compiled patterns.
func (p *Policy) Patterns() []string {
	return append([]string(nil), p.patterns...)
}

// LogDenialHandler logs denials through the default slog logger.
type LogDenialHandler struct{}

// OnDenial implements ports.DenialHandler.
func (LogDenialHandler) OnDenial(name string) {
	slog.Debug("policy: intrinsic denied", "intrinsic", name)
}
