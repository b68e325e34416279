package entities

// StreamProcess selects the process's own stdout or stderr for an intrinsic stream.
const StreamProcess = "-"

// DefaultModuleName is the WebAssembly import module that compiled programs
// resolve their externs against.
const DefaultModuleName = "env"

// Config represents runtime configuration settings.
// Every field is optional in a config file; absent fields keep DefaultConfig values.
type Config struct {
	// LogLevel is the diagnostic logging verbosity ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// LogFile receives diagnostic logs. Empty discards them, "-" uses stderr.
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`

	// Stdout is where printd writes: "-" for the process stdout or a file path.
	Stdout string `json:"stdout,omitempty" yaml:"stdout,omitempty" validate:"omitempty,min=1"`

	// Stderr is where putchard writes: "-" for the process stderr or a file path.
	Stderr string `json:"stderr,omitempty" yaml:"stderr,omitempty" validate:"omitempty,min=1"`

	// ModuleName is the import module name exposed to WebAssembly programs.
	ModuleName string `json:"module_name,omitempty" yaml:"module_name,omitempty" validate:"omitempty,min=1,max=64"`

	// Allow lists glob patterns of intrinsic names exposed to programs.
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty" validate:"omitempty,dive,required"`

	// MaxCaptureBytes bounds captured program output. Zero disables capturing.
	MaxCaptureBytes int `json:"max_capture_bytes,omitempty" yaml:"max_capture_bytes,omitempty" validate:"gte=0" jsonschema:"minimum=0"`

	// ReportWriteErrors logs intrinsic write failures instead of dropping them silently.
	// The intrinsic still returns 0.0 either way.
	ReportWriteErrors bool `json:"report_write_errors,omitempty" yaml:"report_write_errors,omitempty"`
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "warn",
		Stdout:     StreamProcess,
		Stderr:     StreamProcess,
		ModuleName: DefaultModuleName,
		Allow:      []string{"*"},
	}
}

// ConfigOption is a functional option for configuring runtime settings.
type ConfigOption func(*Config)

// WithLogLevel sets the diagnostic log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// WithModuleName sets the WebAssembly import module name.
func WithModuleName(name string) ConfigOption {
	return func(c *Config) {
		if name != "" {
			c.ModuleName = name
		}
	}
}

// WithAllow replaces the intrinsic allow-list.
func WithAllow(patterns ...string) ConfigOption {
	return func(c *Config) {
		c.Allow = append([]string(nil), patterns...)
	}
}

// WithReportWriteErrors enables or disables logging of swallowed write failures.
func WithReportWriteErrors(enabled bool) ConfigOption {
	return func(c *Config) {
		c.ReportWriteErrors = enabled
	}
}

// NewConfig creates a Config with defaults and applies the given options.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
