package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/quill/pkg/adapters/bolt"
	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/core"
)

// Open creates a Store over the storage selected by opts and loads it.
// An empty path means DefaultPath for the chosen adapter.
//
//	store, err := quill.Open("./notes.json", quill.WithLogger(logger))
func Open(path string, opts ...Option) (*core.Store, error) {
	storage, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	store := core.NewStore(context.Background(), storage, core.Config{
		Logger:      o.logger,
		EventBuffer: o.eventBuffer,
		Clock:       o.clock,
		IDGenerator: o.idGenerator,
	})
	return store, nil
}

// Init builds the configured storage without loading it.
func Init(path string, opts ...Option) (core.Storage, error) {
	o := applyOptions(opts)

	if o.storage != nil {
		return o.storage, nil
	}

	if path == "" {
		def, err := DefaultPath(o.adapter)
		if err != nil {
			return nil, err
		}
		path = def
	}

	// Read-only never writes, so it is safe outside the sandbox
	useTemp := o.forceTemp || (o.devSafety && !o.readOnly && IsDevRun())
	resolved := ResolvePath(path, useTemp)
	if resolved != path {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "path", resolved)
	}

	switch o.adapter {
	case AdapterFS:
		repo, err := fs.NewRepository(fs.Config{
			Path:         resolved,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
		if err != nil {
			return nil, err
		}
		return repo, nil
	case AdapterBolt:
		db, err := bolt.Open(bolt.Config{
			Path:     resolved,
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
