package platform

import (
	"log/slog"

	"github.com/richardhadden/metakit/pkg/core"
)

// options holds the internal configuration for the metakit service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	pattern      string
	mustExist    bool
	strict       bool
	eventBuffer  int
	errorHandler func(error)
}

// Option defines a functional option for configuring metakit.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPattern overrides the doublestar glob used to discover definition
// files under the definition root.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithMustExist ensures the definition directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithStrict enables strict number parsing for JSON manifests. Numbers are
// decoded as json.Number (string based) to preserve precision of large
// integers before being coerced per field kind.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithEventBuffer sets the capacity of the Watch event channel. Values
// below 1 keep the adapter default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithRepository allows injecting a custom definition source (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring
// during the Watch loop. This allows applications to log or react to
// runtime watcher failures (e.g. permission denied) which are otherwise
// only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
