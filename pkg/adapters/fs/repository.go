package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/quill/pkg/core"
)

// DefaultFileMode is applied to the notes file on every write.
const DefaultFileMode os.FileMode = 0o600

// Repository implements core.Storage on a single file.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	lastWrite     *time.Time
	watcherActive bool
}

// Config holds the configuration for the file storage.
type Config struct {
	Path     string
	ReadOnly bool
	FileMode os.FileMode // Zero means DefaultFileMode.
	Logger   *slog.Logger
	// Serializers overrides the extension table. Nil means DefaultSerializers.
	Serializers map[string]Serializer
	// ErrorHandler receives runtime watcher failures in addition to logging.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed storage. The format is chosen
// from the file extension; unknown or missing extensions fall back to JSON.
func NewRepository(config Config) (*Repository, error) {
	if strings.TrimSpace(config.Path) == "" {
		return nil, errors.New("notes file path is required")
	}
	if config.FileMode == 0 {
		config.FileMode = DefaultFileMode
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	serializers := config.Serializers
	if serializers == nil {
		serializers = DefaultSerializers()
	}

	ext := strings.ToLower(filepath.Ext(config.Path))
	s, ok := serializers[ext]
	if !ok {
		if ext != "" {
			config.Logger.Warn("unknown notes file extension, using json", "path", config.Path)
		}
		s = NewJSONSerializer()
	}

	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: s,
	}, nil
}

// Location implements core.Locator.
func (r *Repository) Location() string {
	return r.Path
}

// Load reads and parses the notes file. A missing file is an empty list.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.config.Logger.Debug("notes file does not exist yet", "path", r.Path)
			return []core.Note{}, nil
		}
		return nil, &core.StorageError{Op: "load", Path: r.Path, Err: err}
	}

	notes, err := r.serializer.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &core.StorageError{Op: "load", Path: r.Path, Err: err}
	}
	return notes, nil
}

// Save serializes notes and replaces the file atomically. The parent
// directory is created if needed.
func (r *Repository) Save(ctx context.Context, notes []core.Note) error {
	if r.config.ReadOnly {
		return &core.StorageError{Op: "save", Path: r.Path, Err: core.ErrReadOnly}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Serialize(notes)
	if err != nil {
		return &core.StorageError{Op: "save", Path: r.Path, Err: fmt.Errorf("failed to serialize: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o700); err != nil {
		return &core.StorageError{Op: "save", Path: r.Path, Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	if err := writeFileAtomic(r.Path, data, r.config.FileMode); err != nil {
		return &core.StorageError{Op: "save", Path: r.Path, Err: err}
	}

	r.recordWrite()
	return nil
}

func (r *Repository) recordWrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastWrite = &now
}
