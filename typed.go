package metakit

import (
	"fmt"

	"github.com/richardhadden/metakit/pkg/core"
)

// Value retrieves a record field with a static type. It fails when the
// field does not exist in the record's schema or holds a different dynamic
// type.
func Value[T any](r *core.Record, name string) (T, error) {
	var zero T
	v, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("field %q not present in schema %q", name, r.Schema().Name())
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("field %q holds %T, not %T", name, v, zero)
	}
	return tv, nil
}

// MustValue is like Value but panics on failure. Intended for
// type-definition time lookups where the schema is known.
func MustValue[T any](r *core.Record, name string) T {
	v, err := Value[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}
