package core

import (
	"fmt"
	"sync"
)

// EntityType is a node in a hierarchy: at most one parent, an optional own
// record, and the effective record computed once at registration.
type EntityType struct {
	name      string
	parent    *EntityType
	own       *Record
	effective *Record
}

// Name returns the entity type name.
func (t *EntityType) Name() string { return t.name }

// Parent returns the parent type, or nil for a root.
func (t *EntityType) Parent() *EntityType { return t.parent }

// Own returns the record this type declared itself, if any.
func (t *EntityType) Own() (*Record, bool) { return t.own, t.own != nil }

// Effective returns the fully resolved record for this type.
func (t *EntityType) Effective() *Record { return t.effective }

// Hierarchy resolves effective records for a tree of entity types sharing
// one schema. Registration is strictly root-to-leaf: a type's parent must
// already be registered, so resolution always reads an already-cached
// ancestor record. Effective records are written once and never change.
type Hierarchy struct {
	schema *Schema

	mu    sync.RWMutex
	types map[string]*EntityType
	order []string
}

// NewHierarchy binds the hierarchy to its schema. Every own record
// registered later must be bound to this exact schema.
func NewHierarchy(schema *Schema) *Hierarchy {
	return &Hierarchy{schema: schema, types: make(map[string]*EntityType)}
}

// Schema returns the schema fixed for this hierarchy.
func (h *Hierarchy) Schema() *Schema { return h.schema }

// Register adds an entity type and resolves its effective record
// immediately. parent names an already-registered type, or "" for a root.
// own may be nil when the type declares no record of its own.
//
// A failed registration leaves the hierarchy as it was; already-registered
// types keep their cached records. Descendants of the failed type cannot
// register (their parent is missing), which is the intended propagation.
func (h *Hierarchy) Register(name, parent string, own *Record) (*EntityType, error) {
	if name == "" {
		return nil, fmt.Errorf("entity type name cannot be empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, dup := h.types[name]; dup {
		return nil, fmt.Errorf("entity type %q already registered", name)
	}

	var parentType *EntityType
	if parent != "" {
		var ok bool
		parentType, ok = h.types[parent]
		if !ok {
			return nil, fmt.Errorf("entity type %q: parent %q not registered; ancestors must be registered first", name, parent)
		}
	}

	if own != nil && own.Schema() != h.schema {
		return nil, &SchemaMismatchError{TypeName: name, Want: h.schema.name, Got: own.Schema().name}
	}

	effective, err := h.resolve(name, parentType, own)
	if err != nil {
		return nil, err
	}

	t := &EntityType{name: name, parent: parentType, own: own, effective: effective}
	h.types[name] = t
	h.order = append(h.order, name)
	return t, nil
}

// resolve computes the effective record for one type. The nearest
// ancestor's effective record already encodes the whole chain above it, so
// a single merge step suffices.
func (h *Hierarchy) resolve(name string, parent *EntityType, own *Record) (*Record, error) {
	var effective *Record
	var err error
	switch {
	case own == nil && parent == nil:
		// No record anywhere: the schema must stand on its defaults alone.
		effective, err = h.schema.NewRecord(nil)
		if err != nil {
			return nil, &UnresolvableSchemaError{TypeName: name, Schema: h.schema.name, Cause: err}
		}
	case own == nil:
		effective, err = parent.effective.Merge(nil)
	case parent == nil:
		effective = own
	default:
		effective, err = parent.effective.Merge(own)
	}
	if err != nil {
		return nil, err
	}

	for _, f := range h.schema.fields {
		if IsPlaceholder(effective.values[f.Name]) {
			return nil, &UnresolvedPlaceholderError{TypeName: name, FieldName: f.Name}
		}
	}
	return effective, nil
}

// Type returns a registered entity type by name.
func (h *Hierarchy) Type(name string) (*EntityType, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.types[name]
	return t, ok
}

// Types returns all registered types in registration order.
func (h *Hierarchy) Types() []*EntityType {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*EntityType, 0, len(h.order))
	for _, name := range h.order {
		out = append(out, h.types[name])
	}
	return out
}

// Resolve returns the cached effective record for a registered type.
func (h *Hierarchy) Resolve(name string) (*Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.types[name]
	if !ok {
		return nil, fmt.Errorf("entity type %q not registered", name)
	}
	return t.effective, nil
}
