package core

import "context"

// Storage defines the contract for persisting the ordered note list.
// Adhering to this interface keeps the store independent of the underlying
// medium (a single file, a key-value blob, ...).
type Storage interface {
	// Load reads the full ordered list. A missing location yields an empty
	// list and no error.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the persisted list with notes. Implementations must be
	// atomic: on failure the previous content stays intact.
	Save(ctx context.Context, notes []Note) error
}

// Locator is implemented by storages that live at an addressable location.
type Locator interface {
	Location() string
}

// Watchable is implemented by storages that can report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
