package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Repository provides manifest definitions from some backing source.
type Repository interface {
	// Initialize performs any setup the source needs.
	Initialize(ctx context.Context) error
	// Load returns every manifest in a deterministic order.
	Load(ctx context.Context) ([]*Manifest, error)
}

// Watchable is implemented by repositories that can report definition
// changes.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Service owns the hierarchies built from a repository's manifests.
type Service struct {
	repo Repository

	mu          sync.RWMutex
	hierarchies map[string]*Hierarchy
}

// NewService creates a Service over the given definition source.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, hierarchies: make(map[string]*Hierarchy)}
}

// Load reads every manifest and rebuilds all hierarchies, keyed by schema
// name. On failure the previously loaded state is left untouched.
func (s *Service) Load(ctx context.Context) error {
	manifests, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	built := make(map[string]*Hierarchy, len(manifests))
	for _, m := range manifests {
		h, err := m.Build()
		if err != nil {
			return err
		}
		name := h.Schema().Name()
		if _, dup := built[name]; dup {
			return fmt.Errorf("duplicate schema %q across manifests", name)
		}
		built[name] = h
	}

	s.mu.Lock()
	s.hierarchies = built
	s.mu.Unlock()
	return nil
}

// Hierarchy returns a loaded hierarchy by schema name.
func (s *Service) Hierarchy(name string) (*Hierarchy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hierarchies[name]
	return h, ok
}

// Hierarchies returns the loaded schema names, sorted.
func (s *Service) Hierarchies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.hierarchies))
	for name := range s.hierarchies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the effective record for a type within a hierarchy.
func (s *Service) Resolve(hierarchy, typeName string) (*Record, error) {
	h, ok := s.Hierarchy(hierarchy)
	if !ok {
		return nil, fmt.Errorf("hierarchy %q not loaded", hierarchy)
	}
	return h.Resolve(typeName)
}

// Watch observes definition changes if the repository supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}
