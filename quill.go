package quill

import (
	"log/slog"
	"time"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/core"
)

// --- Types ---

// Note is a public alias for core.Note.
type Note = core.Note

// Store is a public alias for core.Store.
type Store = core.Store

// Config is the content of a quill.yaml file.
type Config = platform.Config

// --- Errors ---

var (
	ErrValidation = core.ErrValidation
	ErrNotFound   = core.ErrNotFound
	ErrStorage    = core.ErrStorage
	ErrReadOnly   = core.ErrReadOnly
)

// --- Configuration ---

// Option defines a functional option for configuring Quill.
type Option = platform.Option

const (
	AdapterFS   = platform.AdapterFS
	AdapterBolt = platform.AdapterBolt
)

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage backend.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithAdapter selects the storage adapter by name ("fs" or "bolt").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithReadOnly opens the storage in read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the notes location into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithClock overrides the time source used for note timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithIDGenerator overrides the note id strategy.
func WithIDGenerator(gen core.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// WithWatcherErrorHandler registers a callback for file watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open creates a Store and loads its notes. An empty path uses the default
// location (~/.quill/notes.json).
func Open(path string, opts ...Option) (*core.Store, error) {
	return platform.Open(path, opts...)
}

// Init builds the configured storage without loading it.
func Init(path string, opts ...Option) (core.Storage, error) {
	return platform.Init(path, opts...)
}

// --- Config & Utils ---

// LoadConfig reads the nearest quill.yaml above dir.
func LoadConfig(dir string) (Config, error) {
	return platform.LoadConfig(dir)
}

// FindRoot recursively looks upwards for a quill.yaml or .quill directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ResolvePath determines the actual notes location based on safety rules.
func ResolvePath(path string, forceTemp bool) string {
	return platform.ResolvePath(path, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
