package core

import "fmt"

// Schema describes a record type: its fields in declaration order, their
// merge policies and defaults. A Schema is immutable once defined; records
// bind to it by identity, so two structurally identical schemas are still
// distinct.
type Schema struct {
	name   string
	fields []FieldSpec
	index  map[string]int
}

// Define validates the field list and returns an immutable Schema.
//
// Policy violations are collected into a single *SchemaDefinitionError, so
// one failed call reports every offending field: DoNotInherit fields must
// declare a default, Accumulate fields must be collection typed with a
// collection default.
func Define(name string, fields ...FieldSpec) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("schema name cannot be empty")
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %q: field %d has no name", name, i)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field %q", name, f.Name)
		}
		index[f.Name] = i
	}

	defErr := &SchemaDefinitionError{Schema: name}
	for _, f := range fields {
		switch f.Policy {
		case DoNotInherit:
			if !f.HasDefault() {
				defErr.MissingDefault = append(defErr.MissingDefault, f.Name)
			}
		case Accumulate:
			def, ok := f.defaultValue()
			if !f.Kind.Collection() || !ok || !isCollectionValue(def) {
				defErr.NonCollection = append(defErr.NonCollection, f.Name)
			}
		}
	}
	if len(defErr.MissingDefault) > 0 || len(defErr.NonCollection) > 0 {
		return nil, defErr
	}

	owned := make([]FieldSpec, len(fields))
	copy(owned, fields)

	return &Schema{name: name, fields: owned, index: index}, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns the field specs in declaration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the spec for a named field.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}
