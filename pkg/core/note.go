package core

import "time"

// Note is the central entity of the domain.
// It is a short piece of text identified by an ID and stamped with the
// instant it was created or last edited.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// cloneNotes returns a copy of the slice so callers never alias the store.
func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}
