package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// maxIDAttempts bounds the retries when a custom IDGenerator collides.
const maxIDAttempts = 8

// DefaultEventBuffer is the per-subscriber buffer used when Config leaves it zero.
const DefaultEventBuffer = 100

// Config holds the optional collaborators of a Store.
type Config struct {
	Logger      *slog.Logger
	EventBuffer int
	Clock       func() time.Time
	IDGenerator IDGenerator
}

// Store owns the ordered note list and keeps it in sync with a Storage.
//
// Every mutation is applied in memory first and then persisted. A failed
// write never rolls the mutation back: the in-memory list stays the source
// of truth for the session and the failure is logged and returned as a
// *StorageError next to the otherwise valid result.
type Store struct {
	storage     Storage
	logger      *slog.Logger
	clock       func() time.Time
	newID       IDGenerator
	eventBuffer int

	mu          sync.RWMutex
	notes       []Note
	lastSave    *time.Time
	lastSaveErr error

	subMu   sync.Mutex
	subs    map[int]subscription
	nextSub int
	closed  bool
}

type subscription struct {
	ch     chan Event
	cancel context.CancelFunc
}

// NewStore creates a Store backed by storage and loads its current content.
// Load failures degrade to an empty list.
func NewStore(ctx context.Context, storage Storage, cfg Config) *Store {
	s := &Store{
		storage:     storage,
		logger:      cfg.Logger,
		clock:       cfg.Clock,
		newID:       cfg.IDGenerator,
		eventBuffer: cfg.EventBuffer,
		subs:        make(map[int]subscription),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = UUIDv7()
	}
	if s.eventBuffer <= 0 {
		s.eventBuffer = DefaultEventBuffer
	}

	s.Load(ctx)
	return s
}

// now returns the current instant in UTC without a monotonic reading, so
// it compares equal to its persisted form.
func (s *Store) now() time.Time {
	return s.clock().UTC().Round(0)
}

// Load reads the note list from storage and replaces the in-memory list.
// Missing, empty or corrupt storage yields an empty list; the failure is
// logged, never returned.
func (s *Store) Load(ctx context.Context) []Note {
	loaded, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load notes, starting empty", "error", err)
		loaded = nil
	}

	s.mu.Lock()
	s.notes = s.sanitize(loaded)
	out := cloneNotes(s.notes)
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "count", len(out))
	return out
}

// sanitize enforces id uniqueness on data coming from storage.
func (s *Store) sanitize(loaded []Note) []Note {
	notes := make([]Note, 0, len(loaded))
	seen := make(map[string]bool, len(loaded))
	for _, n := range loaded {
		if n.ID == "" {
			n.ID = s.uniqueID(seen)
			s.logger.Warn("stored note had no id, assigned one", "id", n.ID)
		}
		if seen[n.ID] {
			s.logger.Warn("dropping duplicate note id from storage", "id", n.ID)
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}
	return notes
}

func (s *Store) uniqueID(taken map[string]bool) string {
	id := s.newID()
	for i := 1; taken[id] && i < maxIDAttempts; i++ {
		id = s.newID()
	}
	return id
}

// Save writes the full ordered list to storage.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	err := s.storage.Save(ctx, cloneNotes(s.notes))
	if err != nil {
		var se *StorageError
		if !errors.As(err, &se) {
			se = &StorageError{Op: "save", Path: s.location(), Err: err}
		}
		s.lastSaveErr = se
		s.logger.Error("failed to save notes, keeping in-memory state", "count", len(s.notes), "error", se)
		return se
	}

	now := s.now()
	s.lastSave = &now
	s.lastSaveErr = nil
	s.logger.Debug("notes saved", "count", len(s.notes))
	return nil
}

func (s *Store) location() string {
	if l, ok := s.storage.(Locator); ok {
		return l.Location()
	}
	return ""
}

// List returns the notes in display order.
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], nil
	}
	return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Store) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func validateContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}
	return nil
}

// Create appends a new note with a fresh id and the current timestamp.
func (s *Store) Create(ctx context.Context, content string) (Note, error) {
	if err := validateContent(content); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	taken := make(map[string]bool, len(s.notes))
	for _, n := range s.notes {
		taken[n.ID] = true
	}
	id := s.uniqueID(taken)
	if taken[id] {
		s.mu.Unlock()
		return Note{}, fmt.Errorf("could not generate a unique id after %d attempts", maxIDAttempts)
	}

	note := Note{ID: id, Content: content, Timestamp: s.now()}
	s.notes = append(s.notes, note)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.publish(newEvent(EventCreate, note.ID, note.Timestamp))
	return note, err
}

// Update replaces the content of the note with the given id and refreshes
// its timestamp.
func (s *Store) Update(ctx context.Context, id, content string) (Note, error) {
	if err := validateContent(content); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.notes[i].Content = content
	s.notes[i].Timestamp = s.now()
	note := s.notes[i]
	err := s.persist(ctx)
	s.mu.Unlock()

	s.publish(newEvent(EventModify, note.ID, note.Timestamp))
	return note, err
}

// Delete removes every note whose id is in ids. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	kept := make([]Note, 0, len(s.notes))
	var removed []string
	for _, n := range s.notes {
		if drop[n.ID] {
			removed = append(removed, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.notes = kept
	err := s.persist(ctx)
	s.mu.Unlock()

	now := s.now()
	events := make([]Event, 0, len(removed))
	for _, id := range removed {
		events = append(events, newEvent(EventDelete, id, now))
	}
	s.publish(events...)
	return err
}

// Reorder moves the notes at the positions in from to just before position
// to, keeping their relative order. Indices refer to the current list.
func (s *Store) Reorder(ctx context.Context, from []int, to int) error {
	s.mu.Lock()
	moved, err := moveIndices(s.notes, from, to)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(from) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.notes = moved
	err = s.persist(ctx)
	s.mu.Unlock()

	s.publish(newEvent(EventReorder, "", s.now()))
	return err
}

// Subscribe returns a stream of change events. The channel is closed when
// ctx is done or the store is closed. Events are dropped for subscribers
// that fall behind.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, s.eventBuffer)

	s.subMu.Lock()
	if s.closed {
		s.subMu.Unlock()
		close(ch)
		return ch
	}
	ctx, cancel := context.WithCancel(ctx)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = subscription{ch: ch, cancel: cancel}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		close(ch)
		s.subMu.Unlock()
	}()
	return ch
}

func (s *Store) publish(events ...Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, e := range events {
		for _, sub := range s.subs {
			select {
			case sub.ch <- e:
			default:
				s.logger.Debug("subscriber is behind, dropping event", "event", e.String())
			}
		}
	}
}

// Close ends every subscription and releases the storage if it holds
// resources (e.g. a database handle).
func (s *Store) Close() error {
	s.subMu.Lock()
	s.closed = true
	for _, sub := range s.subs {
		sub.cancel()
	}
	s.subMu.Unlock()

	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
