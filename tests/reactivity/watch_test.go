package reactivity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/core"
)

func next(t *testing.T, ch <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

// TestWatch_SecondProcessSeesChanges simulates two CLI invocations sharing a
// notes file: one writes, the other watches and reloads.
func TestWatch_SecondProcessSeesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "notes.json")

	writer, err := quill.Open(path)
	require.NoError(t, err)
	_, err = writer.Create(ctx, "first")
	require.NoError(t, err)

	storage, err := quill.Init(path)
	require.NoError(t, err)
	viewer := core.NewStore(ctx, storage, core.Config{})
	require.Len(t, viewer.List(), 1)

	events, err := storage.(core.Watchable).Watch(ctx)
	require.NoError(t, err)

	_, err = writer.Create(ctx, "second")
	require.NoError(t, err)

	e := next(t, events)
	assert.Equal(t, core.EventModify, e.Type)
	assert.Equal(t, writer.List(), viewer.Load(ctx))
}

func TestSubscribe_EventsFollowMutations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := quill.Open(filepath.Join(t.TempDir(), "notes.yaml"), quill.WithEventBuffer(8))
	require.NoError(t, err)
	events := store.Subscribe(ctx)

	a, err := store.Create(ctx, "a")
	require.NoError(t, err)
	b, err := store.Create(ctx, "b")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, a.ID, b.ID))

	assert.Equal(t, core.Event{Type: core.EventCreate, ID: a.ID, Timestamp: a.Timestamp.Unix()}, next(t, events))
	assert.Equal(t, core.EventCreate, next(t, events).Type)
	deleted := []string{next(t, events).ID, next(t, events).ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, deleted)
	assert.Equal(t, 1, store.State().(core.StoreState).Subscribers)
}
