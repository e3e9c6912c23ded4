package ecs

import "go.uber.org/zap"

// LogMode selects which diagnostics a World emits through its logger.
type LogMode int

const (
	// LogWarnings emits warnings only, such as duplicate component adds.
	LogWarnings LogMode = iota
	// LogVerbose additionally emits lifecycle diagnostics at debug level.
	LogVerbose
	// LogSilent suppresses every diagnostic.
	LogSilent
)

func (m LogMode) String() string {
	switch m {
	case LogWarnings:
		return "warnings"
	case LogVerbose:
		return "verbose"
	case LogSilent:
		return "silent"
	default:
		return "unknown"
	}
}

type options struct {
	name        string
	logger      *zap.Logger
	mode        LogMode
	maxEntities int
}

// Option configures a World at construction.
type Option func(*options)

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogMode selects which diagnostics are emitted.
func WithLogMode(mode LogMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithMaxEntities caps the slot capacity of the World. Zero means unbounded.
func WithMaxEntities(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxEntities = n
		}
	}
}

// WithName names the World in diagnostics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func (w *World) debug(msg string, fields ...zap.Field) {
	if w.mode == LogVerbose {
		w.log.Debug(msg, fields...)
	}
}

func (w *World) warn(msg string, fields ...zap.Field) {
	if w.mode != LogSilent {
		w.log.Warn(msg, fields...)
	}
}
