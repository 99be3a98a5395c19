package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("note not found")
	ErrStorage    = errors.New("storage failure")
	ErrReadOnly   = errors.New("storage is in read-only mode")
)

// StorageError reports a failed read or write against the storage backend.
// It matches ErrStorage with errors.Is and unwraps to the underlying cause.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s notes: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s notes at %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
