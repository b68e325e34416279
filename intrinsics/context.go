package intrinsics

import (
	"context"
)

// CallContext wraps a standard context.Context with per-call helpers.
// It gives middleware access to the invoked intrinsic name and lets it store
// call-scoped values without growing the context chain.
type CallContext interface {
	context.Context

	// IntrinsicName returns the name of the intrinsic being invoked.
	IntrinsicName() string

	// SetValue stores a call-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a call-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContext struct {
	context.Context
	values map[any]any
	name   string
}

// NewCallContext creates a new CallContext wrapping the given context.
func NewCallContext(ctx context.Context, name string) CallContext {
	return &callContext{
		Context: ctx,
		name:    name,
		values:  make(map[any]any),
	}
}

func (c *callContext) IntrinsicName() string {
	return c.name
}

func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// CallContextFrom returns ctx itself when it already is a CallContext for
// name, otherwise a new CallContext wrapping ctx.
func CallContextFrom(ctx context.Context, name string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.IntrinsicName() == name {
		return cc
	}
	return NewCallContext(ctx, name)
}

// nameFrom returns the intrinsic name carried by ctx, or "unknown".
func nameFrom(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.IntrinsicName()
	}
	return "unknown"
}
