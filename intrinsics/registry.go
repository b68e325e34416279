package intrinsics

import (
	"context"
	"fmt"
	"sort"

	"github.com/kaleidort/kaleidort/domain/errors"
	"github.com/kaleidort/kaleidort/domain/ports"
)

// Registry is an immutable collection of named intrinsics.
// Once created via NewRegistry, intrinsics cannot be added or removed,
// so lookups need no locking and a Registry may be shared by concurrent callers.
type Registry struct {
	intrinsics map[string]Definition
	names      []string // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	intrinsics map[string]Definition
	middleware []Middleware
	policy     ports.IntrinsicPolicy
	errors     []error
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable Registry with the given options.
// Returns the first error encountered, e.g. a name registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(IOBundle(DefaultStreams())),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		intrinsics: make(map[string]Definition),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	wrapped := make(map[string]Definition, len(b.intrinsics))
	names := make([]string, 0, len(b.intrinsics))
	for name, def := range b.intrinsics {
		if b.policy != nil && !b.policy.Allowed(name) {
			continue
		}
		fn := def.Fn
		// Reverse order so the first middleware wraps outermost.
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](fn)
		}
		wrapped[name] = Definition{Fn: fn, Arity: def.Arity}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{
		intrinsics: wrapped,
		names:      names,
	}, nil
}

// Invoke calls the named intrinsic.
// Unknown names yield *errors.NotFoundError and a wrong argument count
// yields *errors.ArityError.
func (r *Registry) Invoke(ctx context.Context, name string, args ...float64) (float64, error) {
	def, ok := r.intrinsics[name]
	if !ok {
		return 0, &errors.NotFoundError{Name: name}
	}
	if len(args) != def.Arity {
		return 0, &errors.ArityError{Name: name, Want: def.Arity, Got: len(args)}
	}

	return def.Fn(CallContextFrom(ctx, name), args)
}

// Has returns true if an intrinsic with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.intrinsics[name]
	return ok
}

// Arity returns the argument count of the named intrinsic.
func (r *Registry) Arity(name string) (int, bool) {
	def, ok := r.intrinsics[name]
	return def.Arity, ok
}

// Names returns a sorted list of all registered intrinsic names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

func (b *registryBuilder) add(name string, def Definition) error {
	if name == "" {
		return fmt.Errorf("intrinsic name cannot be empty")
	}
	if def.Fn == nil {
		return fmt.Errorf("intrinsic %q has no implementation", name)
	}
	if def.Arity < 0 {
		return fmt.Errorf("intrinsic %q has negative arity %d", name, def.Arity)
	}
	if _, exists := b.intrinsics[name]; exists {
		return fmt.Errorf("duplicate intrinsic name: %q", name)
	}
	b.intrinsics[name] = def
	return nil
}

// WithIntrinsic registers fn under name with the given arity.
func WithIntrinsic(name string, arity int, fn Intrinsic) RegistryOption {
	return WithDefinition(name, Definition{Fn: fn, Arity: arity})
}

// WithDefinition registers a prepared Definition.
func WithDefinition(name string, def Definition) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.add(name, def); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithUnary registers a one-argument intrinsic.
func WithUnary(name string, fn UnaryFunc) RegistryOption {
	return WithDefinition(name, Unary(fn))
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithPolicy hides every intrinsic the policy does not allow.
func WithPolicy(p ports.IntrinsicPolicy) RegistryOption {
	return func(b *registryBuilder) {
		b.policy = p
	}
}
