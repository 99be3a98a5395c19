package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	NoteCount     int        `json:"note_count"`
	Subscribers   int        `json:"subscribers"`
	EventBuffer   int        `json:"event_buffer"`
	StorageType   string     `json:"storage_type"`
	Location      string     `json:"location,omitempty"`
	LastSave      *time.Time `json:"last_save,omitempty"`
	LastSaveError string     `json:"last_save_error,omitempty"`
	Storage       any        `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		NoteCount:   len(s.notes),
		EventBuffer: s.eventBuffer,
		StorageType: "unknown",
		Location:    s.location(),
		LastSave:    s.lastSave,
	}
	if s.lastSaveErr != nil {
		state.LastSaveError = s.lastSaveErr.Error()
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	state.Subscribers = len(s.subs)
	s.subMu.Unlock()

	if comp, ok := s.storage.(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}
	if in, ok := s.storage.(introspection.Introspectable); ok {
		state.Storage = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
