// Package quill is the Composition Root for Quill, a single-user note list
// manager.
//
// It connects the note store (pkg/core) with a storage adapter (pkg/adapters)
// using the Hexagonal Architecture pattern. The store keeps an ordered list of
// short notes in memory and persists the whole list atomically after every
// change.
//
// Features:
//
//   - **Ordered**: display order is user controlled (Reorder) and survives persistence.
//   - **Atomic Saves**: temp file + fsync + rename, or a single bbolt transaction.
//   - **Forgiving Loads**: missing or corrupt storage starts an empty list.
//   - **Formats**: JSON (default) or YAML by file extension; legacy numeric timestamps are read.
//   - **Reactive**: Subscribe to store changes or Watch the notes file.
//
// Usage:
//
//	store, err := quill.Open("./notes.json", quill.WithLogger(logger))
//
//	note, err := store.Create(ctx, "buy milk")
//	err = store.Reorder(ctx, []int{0}, 2)
package quill
