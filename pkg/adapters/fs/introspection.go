package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Pattern       string     `json:"pattern"`
	CacheSize     int        `json:"cache_size"`
	Strict        bool       `json:"strict"`
	WatcherActive bool       `json:"watcher_active"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		Pattern:       r.config.Pattern,
		CacheSize:     r.cache.len(),
		Strict:        r.config.Strict,
		WatcherActive: r.watcherActive,
		LastLoad:      r.lastLoad,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
