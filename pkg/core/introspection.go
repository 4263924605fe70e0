package core

import (
	"sort"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Hierarchies    []string `json:"hierarchies"`
	TypeCount      int      `json:"type_count"`
	RepositoryType string   `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	names := make([]string, 0, len(s.hierarchies))
	total := 0
	for name, h := range s.hierarchies {
		names = append(names, name)
		total += len(h.Types())
	}

	sort.Strings(names)

	return ServiceState{
		Hierarchies:    names,
		TypeCount:      total,
		RepositoryType: repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
