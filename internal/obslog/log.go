// Package obslog wraps zap with the component-scoped logging convention
// the rest of the module follows: every package that logs takes a
// *zap.Logger (defaulting to a no-op logger) and scopes it to its own
// component name rather than reaching for a process-wide global.
package obslog

import "go.uber.org/zap"

// Component returns logger scoped with a "component" field, or a no-op
// logger if logger is nil, so callers never need a nil check of their own.
func Component(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", name))
}

// NewDevelopment builds a human-readable, debug-level logger for local
// runs and tests.
func NewDevelopment() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
