package fs

import (
	"sync"
	"time"

	"github.com/richardhadden/metakit/pkg/core"
)

// cacheEntry is a parsed manifest keyed by file modification time.
type cacheEntry struct {
	modTime  time.Time
	manifest *core.Manifest
}

// cache avoids re-parsing definition files that have not changed between
// loads. It is purely in-memory: manifests are cheap to re-parse on
// process start, only repeated loads within one process pay off.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]cacheEntry)}
}

// get returns the cached manifest for rel if its recorded modification
// time matches.
func (c *cache) get(rel string, modTime time.Time) (*core.Manifest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[rel]
	if !ok || !e.modTime.Equal(modTime) {
		return nil, false
	}
	return e.manifest, true
}

func (c *cache) put(rel string, modTime time.Time, m *core.Manifest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rel] = cacheEntry{modTime: modTime, manifest: m}
}

func (c *cache) invalidate(rel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, rel)
}

func (c *cache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
