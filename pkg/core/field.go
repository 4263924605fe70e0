package core

import (
	"fmt"
	"sort"
)

// Kind identifies the value type a field accepts.
type Kind int

const (
	// KindAny accepts any value.
	KindAny Kind = iota
	// KindBool accepts booleans.
	KindBool
	// KindInt accepts integers.
	KindInt
	// KindFloat accepts floating point numbers (integers widen).
	KindFloat
	// KindString accepts strings.
	KindString
	// KindList accepts ordered sequences ([]any).
	KindList
	// KindSet accepts unordered unique collections (Set).
	KindSet
	// KindMap accepts string-keyed mappings (map[string]any).
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a manifest type name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "any":
		return KindAny, nil
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "list":
		return KindList, nil
	case "set":
		return KindSet, nil
	case "map":
		return KindMap, nil
	default:
		return 0, fmt.Errorf("unknown field type: %q", name)
	}
}

// Collection reports whether the kind is one of the collection kinds
// required by the Accumulate policy.
func (k Kind) Collection() bool {
	return k == KindList || k == KindSet || k == KindMap
}

// Set is an unordered collection with unique elements.
type Set map[any]struct{}

// NewSet builds a Set from the given elements.
func NewSet(elems ...any) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Contains reports whether e is in the set.
func (s Set) Contains(e any) bool {
	_, ok := s[e]
	return ok
}

// Elems returns the elements in a stable order.
func (s Set) Elems() []any {
	out := make([]any, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

// union returns the mathematical union of two sets.
func (s Set) union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for e := range s {
		out[e] = struct{}{}
	}
	for e := range other {
		out[e] = struct{}{}
	}
	return out
}

// FieldSpec declares a single named slot in a schema.
type FieldSpec struct {
	Name   string
	Kind   Kind
	Policy Policy

	// Default is the value a record takes when the field is not supplied.
	// A nil Default (and nil DefaultFactory) means the field is required.
	Default any

	// DefaultFactory produces a fresh default per record construction. Use
	// it for mutable containers so records never share a default instance.
	// It takes precedence over Default.
	DefaultFactory func() any
}

// HasDefault reports whether the field can produce a default value.
func (f FieldSpec) HasDefault() bool {
	return f.DefaultFactory != nil || f.Default != nil
}

// defaultValue returns the field default, invoking the factory if present.
// The value is independent of any previously produced default.
func (f FieldSpec) defaultValue() (any, bool) {
	if f.DefaultFactory != nil {
		return f.DefaultFactory(), true
	}
	if f.Default != nil {
		return cloneValue(f.Default), true
	}
	return nil, false
}

// checkValue validates v against the field's kind. The placeholder sentinel
// is only a valid value for fields whose default is the placeholder.
func (f FieldSpec) checkValue(v any) error {
	if IsPlaceholder(v) {
		if IsPlaceholder(f.Default) {
			return nil
		}
		return fmt.Errorf("placeholder not allowed: field has a concrete %s type", f.Kind)
	}

	switch f.Kind {
	case KindAny:
		return nil
	case KindBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case KindInt:
		switch v.(type) {
		case int, int64:
			return nil
		}
	case KindFloat:
		switch v.(type) {
		case float64, float32, int, int64:
			return nil
		}
	case KindString:
		if _, ok := v.(string); ok {
			return nil
		}
	case KindList:
		if _, ok := v.([]any); ok {
			return nil
		}
	case KindSet:
		if _, ok := v.(Set); ok {
			return nil
		}
	case KindMap:
		if _, ok := v.(map[string]any); ok {
			return nil
		}
	}
	return fmt.Errorf("want %s, got %T", f.Kind, v)
}

// cloneValue copies collection values so records never alias each other.
// Copies are deep: nested lists and maps inside elements are cloned too.
// Scalars are returned as-is.
func cloneValue(v any) any {
	switch tv := v.(type) {
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	case Set:
		// Set elements are hashable scalars, nothing deeper to copy.
		out := make(Set, len(tv))
		for e := range tv {
			out[e] = struct{}{}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = cloneValue(val)
		}
		return out
	}
	return v
}

// hashable reports whether v may be a Set element. Decoder output only
// ever holds scalars, []any and map[string]any.
func hashable(v any) bool {
	switch v.(type) {
	case []any, map[string]any, Set:
		return false
	}
	return true
}

// isCollectionValue reports whether v is a list, set or map value.
func isCollectionValue(v any) bool {
	switch v.(type) {
	case []any, Set, map[string]any:
		return true
	}
	return false
}
