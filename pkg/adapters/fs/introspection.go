package fs

import (
	"path/filepath"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Format        string     `json:"format"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	format := "json"
	switch r.serializer.(type) {
	case *YAMLSerializer:
		format = "yaml"
	case *JSONSerializer:
	default:
		format = filepath.Ext(r.Path)
	}

	return RepositoryState{
		Path:          r.Path,
		Format:        format,
		ReadOnly:      r.config.ReadOnly,
		WatcherActive: r.watcherActive,
		LastWrite:     r.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
