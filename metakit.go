package metakit

import (
	"context"
	"log/slog"

	"github.com/richardhadden/metakit/internal/platform"
	"github.com/richardhadden/metakit/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.2.0"

// --- Types ---

// Schema is a public alias for the core schema type.
type Schema = core.Schema

// Record is a public alias for the core record type.
type Record = core.Record

// FieldSpec is a public alias for the core field declaration.
type FieldSpec = core.FieldSpec

// Policy is a public alias for the core merge policy.
type Policy = core.Policy

// Kind is a public alias for the core field kind.
type Kind = core.Kind

// Set is a public alias for the core set value type.
type Set = core.Set

// Hierarchy is a public alias for the core hierarchy resolver.
type Hierarchy = core.Hierarchy

// EntityType is a public alias for a registered hierarchy node.
type EntityType = core.EntityType

// Manifest is a public alias for a declarative hierarchy definition.
type Manifest = core.Manifest

// Service is a public alias for the core service.
type Service = core.Service

// Merge policies.
const (
	InheritOrOverride = core.InheritOrOverride
	DoNotInherit      = core.DoNotInherit
	Accumulate        = core.Accumulate
)

// Field kinds.
const (
	KindAny    = core.KindAny
	KindBool   = core.KindBool
	KindInt    = core.KindInt
	KindFloat  = core.KindFloat
	KindString = core.KindString
	KindList   = core.KindList
	KindSet    = core.KindSet
	KindMap    = core.KindMap
)

// Placeholder is the sentinel default for fields that must be supplied by
// the record itself or by an ancestor somewhere in the hierarchy.
var Placeholder = core.Placeholder

// Define validates a field list and returns an immutable schema.
func Define(name string, fields ...FieldSpec) (*Schema, error) {
	return core.Define(name, fields...)
}

// NewHierarchy binds a resolver to its schema.
func NewHierarchy(schema *Schema) *Hierarchy {
	return core.NewHierarchy(schema)
}

// NewSet builds a set value from the given elements.
func NewSet(elems ...any) Set {
	return core.NewSet(elems...)
}

// IsPlaceholder reports whether v is the placeholder sentinel.
func IsPlaceholder(v any) bool {
	return core.IsPlaceholder(v)
}

// --- Configuration ---

// Option defines a functional option for configuring metakit.
type Option = platform.Option

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPattern overrides the glob used to discover definition files.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithMustExist ensures the definition directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithStrict enables strict number parsing for JSON manifests.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithEventBuffer sets the capacity of the Watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithRepository allows injecting a custom definition source (e.g. mock).
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Entry points ---

// New loads every definition manifest under path and returns the service.
// The definition directory is created when missing.
func New(ctx context.Context, path string, opts ...Option) (*Service, error) {
	return platform.New(ctx, path, opts...)
}

// Open is like New but requires the definition directory to already exist.
func Open(ctx context.Context, path string, opts ...Option) (*Service, error) {
	return platform.New(ctx, path, append([]Option{platform.WithMustExist(true)}, opts...)...)
}

// FindRoot looks upwards from startDir for a definition root indicator
// (metakit.yaml, .metakit or .git).
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
