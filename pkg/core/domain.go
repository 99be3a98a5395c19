package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change applied to the note list.
type EventType string

const (
	EventCreate  EventType = "CREATE"
	EventModify  EventType = "MODIFY"
	EventDelete  EventType = "DELETE"
	EventReorder EventType = "REORDER"
)

// Event represents a change in the note list.
// ID is empty for changes that affect the list as a whole.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

func newEvent(t EventType, id string, now time.Time) Event {
	return Event{Type: t, ID: id, Timestamp: now.Unix()}
}
