package internal

import "log/slog"

// Option is a functional option for configuring the preview server runtime.
type Option func(*runtime)

type runtime struct {
	config *Config
	logger *slog.Logger
}

// WithConfig sets the runtime configuration.
func WithConfig(cfg *Config) Option {
	return func(r *runtime) {
		r.config = cfg
	}
}

// WithLogger overrides the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runtime) {
		r.logger = logger
	}
}
