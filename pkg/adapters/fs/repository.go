package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/richardhadden/metakit/pkg/core"
)

// DefaultPattern matches the definition files the repository loads,
// relative to the definition root.
const DefaultPattern = "**/*.{yaml,yml,json}"

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Pattern   string // doublestar glob, relative to Path; DefaultPattern if empty
	MustExist bool
	Strict    bool // strict number parsing for JSON manifests
	Logger    *slog.Logger

	// EventBuffer sets the capacity of the Watch event channel; 0 means
	// the default of 16.
	EventBuffer int

	// ErrorHandler receives runtime watcher failures which are otherwise
	// only logged.
	ErrorHandler func(error)
}

// Repository implements core.Repository over a directory of manifest
// files.
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer
	cache       *cache

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
}

// NewRepository creates a filesystem-backed definition source.
func NewRepository(config Config) *Repository {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(config.Strict),
		cache:       newCache(),
	}
}

// Initialize verifies (or creates) the definition root.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.Path)
	if os.IsNotExist(err) {
		if r.config.MustExist {
			return fmt.Errorf("definition path does not exist: %s", r.Path)
		}
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create definition directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("definition path is not a directory: %s", r.Path)
	}
	return nil
}

// Load parses every manifest file matching the configured pattern, in
// sorted path order so repeated loads are deterministic.
func (r *Repository) Load(ctx context.Context) ([]*core.Manifest, error) {
	matches, err := doublestar.Glob(os.DirFS(r.Path), r.config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("bad definition pattern %q: %w", r.config.Pattern, err)
	}
	sort.Strings(matches)

	manifests := make([]*core.Manifest, 0, len(matches))
	for _, rel := range matches {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m, err := r.loadFile(rel)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}

	r.recordLoad()
	if r.config.Logger != nil {
		r.config.Logger.Debug("definitions loaded", "count", len(manifests), "path", r.Path)
	}
	return manifests, nil
}

// loadFile parses a single manifest, reusing the cached parse when the
// file has not been modified since.
func (r *Repository) loadFile(rel string) (*core.Manifest, error) {
	full := filepath.Join(r.Path, rel)

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}

	if m, ok := r.cache.get(rel, info.ModTime()); ok {
		return m, nil
	}

	ext := strings.ToLower(filepath.Ext(rel))
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %s", rel)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	m.Source = rel

	r.cache.put(rel, info.ModTime(), m)
	return m, nil
}

// Watch starts a background watcher emitting definition-change events for
// files matching pattern (the repository pattern if empty). The returned
// channel closes after ctx is cancelled and the watcher has shut down.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = r.config.Pattern
	}

	buffer := r.config.EventBuffer
	if buffer <= 0 {
		buffer = 16
	}
	events := make(chan core.Event, buffer)
	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Stop(stopCtx)
		close(events)
	}()

	return events, nil
}

// recursiveAdd registers the definition root and every subdirectory with
// the fsnotify watcher.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// relPath maps an absolute event path to a slash-separated path relative
// to the definition root.
func (r *Repository) relPath(full string) (string, bool) {
	rel, err := filepath.Rel(r.Path, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (r *Repository) recordLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastLoad = &now
}
