package wazero

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

type contextKey struct {
	name string
}

var programNameKey = &contextKey{name: "program_name"}

// WithProgramName adds the calling program's name to the context.
func WithProgramName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, programNameKey, name)
}

// ProgramNameFromContext retrieves the program name from the context.
func ProgramNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(programNameKey).(string)
	return name, ok
}

// GetProgramName extracts the program name from context, falling back to the
// calling module's name.
func GetProgramName(ctx context.Context, mod api.Module) string {
	if name, ok := ProgramNameFromContext(ctx); ok {
		return name
	}
	if mod == nil {
		return ""
	}
	return mod.Name()
}
