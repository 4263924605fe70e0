package core

// Record is an immutable value of a Schema. It tracks which fields were
// explicitly supplied at construction, as opposed to defaulted; that set
// drives the merge rules and is fixed when the record is built, never
// mutated afterwards.
type Record struct {
	schema   *Schema
	values   map[string]any
	explicit map[string]bool
}

// NewRecord constructs a record from explicitly supplied field values.
// Fields absent from supplied take their default, with default factories
// invoked fresh per construction. A field with no default must be
// supplied. Supplied values are validated against each field's kind.
func (s *Schema) NewRecord(supplied map[string]any) (*Record, error) {
	for name := range supplied {
		if _, ok := s.index[name]; !ok {
			return nil, &RecordValidationError{Schema: s.name, Field: name, Reason: "unknown field"}
		}
	}

	values := make(map[string]any, len(s.fields))
	explicit := make(map[string]bool, len(supplied))
	for _, f := range s.fields {
		if v, ok := supplied[f.Name]; ok {
			if err := f.checkValue(v); err != nil {
				return nil, &RecordValidationError{Schema: s.name, Field: f.Name, Reason: err.Error()}
			}
			values[f.Name] = cloneValue(v)
			explicit[f.Name] = true
			continue
		}
		def, ok := f.defaultValue()
		if !ok {
			return nil, &RecordValidationError{Schema: s.name, Field: f.Name, Reason: "required field not supplied and has no default"}
		}
		values[f.Name] = def
	}

	return &Record{schema: s, values: values, explicit: explicit}, nil
}

// Schema returns the schema this record is bound to.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the value of a field. Collection values are copied so the
// record stays immutable.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Explicit reports whether the field was explicitly supplied at
// construction rather than defaulted.
func (r *Record) Explicit(name string) bool { return r.explicit[name] }

// Values returns a copy of all field values keyed by field name.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge computes "child inheriting from r". The receiver is the parent (or
// earlier) record; child may be nil, the defined behavior of merging with
// nothing: DoNotInherit fields reset to their defaults, everything else
// keeps the receiver's value.
//
// Per field, in schema order: Accumulate fields concatenate; an explicitly
// supplied child value wins regardless of policy; otherwise
// InheritOrOverride fields inherit the receiver's value and DoNotInherit
// fields reset to their default. The result's explicitly-supplied set is
// the child's (empty when child is nil). Both operands must be bound to
// the same schema.
func (r *Record) Merge(child *Record) (*Record, error) {
	if child != nil && child.schema != r.schema {
		return nil, &SchemaMismatchError{Want: r.schema.name, Got: child.schema.name}
	}

	values := make(map[string]any, len(r.schema.fields))
	explicit := make(map[string]bool)
	for _, f := range r.schema.fields {
		switch {
		case f.Policy == Accumulate:
			if child == nil {
				values[f.Name] = cloneValue(r.values[f.Name])
			} else {
				values[f.Name] = accumulate(r.values[f.Name], child.values[f.Name])
			}
		case child != nil && child.explicit[f.Name]:
			values[f.Name] = cloneValue(child.values[f.Name])
		case f.Policy != DoNotInherit:
			values[f.Name] = cloneValue(r.values[f.Name])
		default:
			// Reset to default across the non-inheriting boundary. Define
			// guarantees DoNotInherit fields have one.
			def, _ := f.defaultValue()
			values[f.Name] = def
		}
	}
	if child != nil {
		for name := range child.explicit {
			explicit[name] = true
		}
	}

	return &Record{schema: r.schema, values: values, explicit: explicit}, nil
}

// accumulate concatenates collection values: lists preserve order and
// duplicates, sets take the mathematical union, maps take the key union
// with the child winning on collision.
func accumulate(parent, child any) any {
	switch pv := parent.(type) {
	case []any:
		cv, _ := child.([]any)
		out := make([]any, 0, len(pv)+len(cv))
		out = append(out, pv...)
		out = append(out, cv...)
		return out
	case Set:
		cv, _ := child.(Set)
		return pv.union(cv)
	case map[string]any:
		cv, _ := child.(map[string]any)
		out := make(map[string]any, len(pv)+len(cv))
		for k, v := range pv {
			out[k] = v
		}
		for k, v := range cv {
			out[k] = v
		}
		return out
	}
	return cloneValue(parent)
}
