package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed unexpectedly")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	repo, path := setupRepo(t, "notes.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx)
	require.NoError(t, err)

	t.Run("Atomic Save Is One Modify", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, sampleNotes()))
		e := waitEvent(t, events)
		assert.Equal(t, core.EventModify, e.Type)

		select {
		case extra := <-events:
			t.Fatalf("expected a single debounced event, got extra %v", extra)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("Unrelated Files Are Ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644))
		select {
		case e := <-events:
			t.Fatalf("unexpected event %v", e)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, os.Remove(path))
		e := waitEvent(t, events)
		assert.Equal(t, core.EventDelete, e.Type)
	})

	assert.True(t, repo.State().(fs.RepositoryState).WatcherActive)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return !repo.State().(fs.RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)
}

func TestWatch_MissingDirectory(t *testing.T) {
	t.Run("Created On Watch", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := repo.Watch(ctx)
		require.NoError(t, err)
		assert.DirExists(t, filepath.Dir(path))

		require.NoError(t, repo.Save(ctx, sampleNotes()))
		e := waitEvent(t, events)
		assert.Equal(t, core.EventModify, e.Type)
	})

	t.Run("Read Only Does Not Create", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json", func(c *fs.Config) { c.ReadOnly = true })
		_, err := repo.Watch(context.Background())
		assert.Error(t, err)
		assert.NoDirExists(t, filepath.Dir(path))
	})
}
