package core

import (
	"encoding/json"
	"fmt"
)

// Manifest is the declarative form of one hierarchy: a schema declaration
// plus its entity types in root-to-leaf order.
type Manifest struct {
	Schema SchemaDecl `yaml:"schema" json:"schema"`
	Types  []TypeDecl `yaml:"types" json:"types"`

	// Source is the file the manifest was loaded from, when applicable.
	Source string `yaml:"-" json:"-"`
}

// SchemaDecl declares a schema by name and ordered fields.
type SchemaDecl struct {
	Name   string      `yaml:"name" json:"name"`
	Fields []FieldDecl `yaml:"fields" json:"fields"`
}

// FieldDecl declares a single field. Type and Policy use the spellings
// understood by ParseKind and ParsePolicy; an absent policy means
// InheritOrOverride. Inherit marks the default as the placeholder
// sentinel: the field must then be supplied by some type in the hierarchy.
type FieldDecl struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Policy  string `yaml:"policy,omitempty" json:"policy,omitempty"`
	Default any    `yaml:"default,omitempty" json:"default,omitempty"`
	Inherit bool   `yaml:"inherit,omitempty" json:"inherit,omitempty"`
}

// TypeDecl declares an entity type. Parent must name an earlier type in
// the manifest. A nil Meta means the type declares no record of its own;
// an empty mapping declares an (all-defaults) record, which behaves
// differently under merge.
type TypeDecl struct {
	Name   string         `yaml:"name" json:"name"`
	Parent string         `yaml:"parent,omitempty" json:"parent,omitempty"`
	Meta   map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// Build compiles the manifest into a fully resolved Hierarchy. Types are
// registered in declared order, so manifests must list ancestors before
// descendants.
func (m *Manifest) Build() (*Hierarchy, error) {
	if m.Schema.Name == "" {
		return nil, fmt.Errorf("manifest%s: schema has no name", m.at())
	}

	fields := make([]FieldSpec, 0, len(m.Schema.Fields))
	for _, fd := range m.Schema.Fields {
		spec, err := fd.spec()
		if err != nil {
			return nil, fmt.Errorf("manifest%s: schema %q: %w", m.at(), m.Schema.Name, err)
		}
		fields = append(fields, spec)
	}

	schema, err := Define(m.Schema.Name, fields...)
	if err != nil {
		return nil, err
	}

	h := NewHierarchy(schema)
	for _, td := range m.Types {
		var own *Record
		if td.Meta != nil {
			supplied, err := normalizeSupplied(schema, td.Meta)
			if err != nil {
				return nil, fmt.Errorf("manifest%s: type %q: %w", m.at(), td.Name, err)
			}
			own, err = schema.NewRecord(supplied)
			if err != nil {
				return nil, fmt.Errorf("manifest%s: type %q: %w", m.at(), td.Name, err)
			}
		}
		if _, err := h.Register(td.Name, td.Parent, own); err != nil {
			return nil, fmt.Errorf("manifest%s: %w", m.at(), err)
		}
	}
	return h, nil
}

func (m *Manifest) at() string {
	if m.Source == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", m.Source)
}

// spec compiles one field declaration. Collection literal defaults are
// wrapped in fresh-copy factories so records never share a default
// container; accumulate fields without a declared default get an empty
// collection factory.
func (fd FieldDecl) spec() (FieldSpec, error) {
	kind, err := ParseKind(fd.Type)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("field %q: %w", fd.Name, err)
	}
	policy, err := ParsePolicy(fd.Policy)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("field %q: %w", fd.Name, err)
	}

	spec := FieldSpec{Name: fd.Name, Kind: kind, Policy: policy}
	switch {
	case fd.Inherit:
		spec.Default = Placeholder
	case fd.Default != nil:
		def, err := normalizeValue(kind, fd.Default)
		if err != nil {
			return FieldSpec{}, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		if isCollectionValue(def) {
			spec.DefaultFactory = func() any { return cloneValue(def) }
		} else {
			spec.Default = def
		}
	case policy == Accumulate && kind.Collection():
		spec.DefaultFactory = emptyCollection(kind)
	}
	return spec, nil
}

// emptyCollection returns a factory producing an empty value of the kind.
func emptyCollection(kind Kind) func() any {
	switch kind {
	case KindList:
		return func() any { return []any{} }
	case KindSet:
		return func() any { return Set{} }
	case KindMap:
		return func() any { return map[string]any{} }
	}
	return nil
}

// normalizeSupplied adapts decoded manifest values to the engine's value
// shapes. Unknown field names pass through so NewRecord reports them.
func normalizeSupplied(schema *Schema, meta map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(meta))
	for name, v := range meta {
		if f, ok := schema.Field(name); ok {
			nv, err := normalizeValue(f.Kind, v)
			if err != nil {
				return nil, &RecordValidationError{Schema: schema.name, Field: name, Reason: err.Error()}
			}
			out[name] = nv
		} else {
			out[name] = v
		}
	}
	return out, nil
}

// normalizeValue bridges decoder output to field kinds: set fields arrive
// as sequences, JSON numbers arrive as json.Number (strict mode) or
// float64. Sequence elements destined for a Set must be hashable; lists
// and maps as set members are rejected here, before they would become
// map keys.
func normalizeValue(kind Kind, v any) (any, error) {
	switch kind {
	case KindSet:
		if list, ok := v.([]any); ok {
			s := make(Set, len(list))
			for _, e := range list {
				e = normalizeScalar(e)
				if !hashable(e) {
					return nil, fmt.Errorf("set element is a %T, set elements must be scalar", e)
				}
				s[e] = struct{}{}
			}
			return s, nil
		}
	case KindInt:
		switch n := v.(type) {
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), nil
			}
		case int64:
			return int(n), nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		}
	case KindFloat:
		switch n := v.(type) {
		case json.Number:
			if fl, err := n.Float64(); err == nil {
				return fl, nil
			}
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindList:
		if list, ok := v.([]any); ok {
			out := make([]any, len(list))
			for i, e := range list {
				out[i] = normalizeScalar(e)
			}
			return out, nil
		}
	case KindMap:
		if mp, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(mp))
			for k, e := range mp {
				out[k] = normalizeScalar(e)
			}
			return out, nil
		}
	}
	return v, nil
}

// normalizeScalar converts json.Number elements inside collections to the
// closest native type.
func normalizeScalar(v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if fl, err := n.Float64(); err == nil {
			return fl
		}
	}
	return v
}
