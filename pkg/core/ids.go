package core

import "github.com/google/uuid"

// IDGenerator produces unique string identifiers for new notes.
type IDGenerator func() string

// UUIDv7 returns an IDGenerator producing RFC 9562 UUID v7 strings.
// They sort by creation time, which keeps storage diffs readable.
func UUIDv7() IDGenerator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}
