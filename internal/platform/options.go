package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/quill/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS   = "fs"
	AdapterBolt = "bolt"
)

// options holds the internal configuration for a Quill store.
type options struct {
	storage      core.Storage
	logger       *slog.Logger
	adapter      string
	eventBuffer  int
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	clock        func() time.Time
	idGenerator  core.IDGenerator
	errorHandler func(error)
}

// Option defines a functional option for configuring Quill.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		devSafety: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage (e.g. in-memory for tests).
// If provided, the adapter and path are ignored.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "bolt").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer.
// Zero means core.DefaultEventBuffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithReadOnly opens the storage in read-only mode. Mutations still apply
// in memory but every save reports core.ErrReadOnly.
// The dev sandbox is bypassed since nothing is written.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the notes location into a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) paths outside the system temp directory are
// redirected there to protect real notes.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithClock overrides the time source used for note timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithIDGenerator overrides the id strategy (UUIDv7 by default).
func WithIDGenerator(gen core.IDGenerator) Option {
	return func(o *options) {
		o.idGenerator = gen
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the
// file watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
