// Package bolt stores the note list as a single blob in a bbolt database.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	bbolt "go.etcd.io/bbolt"

	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/core"
)

var (
	bucketNotes = []byte("notes")
	keyList     = []byte("list")
)

// Storage implements core.Storage on top of bbolt. The ordered list is kept
// as one JSON array value, so every save replaces it in a single
// transaction.
type Storage struct {
	path   string
	db     *bbolt.DB
	codec  fs.Serializer
	logger *slog.Logger
}

// Config holds the configuration for the bbolt storage.
type Config struct {
	Path     string
	ReadOnly bool
	Timeout  time.Duration // Zero means 2s.
	Logger   *slog.Logger
}

// Open opens (or creates) the database at cfg.Path. The file stays locked
// until Close.
func Open(cfg Config) (*Storage, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if !cfg.ReadOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
	}

	opts := &bbolt.Options{Timeout: cfg.Timeout, ReadOnly: cfg.ReadOnly}
	db, err := bbolt.Open(path, 0o600, opts)
	if err != nil && isCorrupt(err) && !cfg.ReadOnly {
		moved := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		cfg.Logger.Warn("database is corrupt, starting empty", "path", path, "moved_to", moved, "error", err)
		if rerr := os.Rename(path, moved); rerr != nil {
			return nil, fmt.Errorf("failed to move corrupt database %s: %w", path, rerr)
		}
		db, err = bbolt.Open(path, 0o600, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !cfg.ReadOnly {
		err := db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketNotes)
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Storage{path: path, db: db, codec: fs.NewJSONSerializer(), logger: cfg.Logger}, nil
}

// isCorrupt reports whether err means the file is not a usable database,
// as opposed to a lock timeout or a permission problem.
func isCorrupt(err error) bool {
	return errors.Is(err, bbolt.ErrInvalid) ||
		errors.Is(err, bbolt.ErrChecksum) ||
		errors.Is(err, bbolt.ErrVersionMismatch)
}

// Location implements core.Locator.
func (s *Storage) Location() string {
	return s.path
}

// Load implements core.Storage.
func (s *Storage) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blob []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		// Values are only valid inside the transaction.
		if v := b.Get(keyList); v != nil {
			blob = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, &core.StorageError{Op: "load", Path: s.path, Err: err}
	}
	if blob == nil {
		s.logger.Debug("no notes stored yet", "path", s.path)
		return []core.Note{}, nil
	}

	notes, err := s.codec.Parse(bytes.NewReader(blob))
	if err != nil {
		return nil, &core.StorageError{Op: "load", Path: s.path, Err: err}
	}
	return notes, nil
}

// Save implements core.Storage.
func (s *Storage) Save(ctx context.Context, notes []core.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsReadOnly() {
		return &core.StorageError{Op: "save", Path: s.path, Err: core.ErrReadOnly}
	}

	blob, err := s.codec.Serialize(notes)
	if err != nil {
		return &core.StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("failed to serialize: %w", err)}
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketNotes)
		if err != nil {
			return err
		}
		return b.Put(keyList, blob)
	})
	if err != nil {
		return &core.StorageError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Close releases the database file lock.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	TxCount  int    `json:"tx_count"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	stats := s.db.Stats()
	return StorageState{
		Path:     s.path,
		ReadOnly: s.db.IsReadOnly(),
		TxCount:  stats.TxN,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "bolt"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
