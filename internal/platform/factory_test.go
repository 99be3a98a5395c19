package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/adapters/bolt"
	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/core"
)

func TestOpen_FS(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	store, err := platform.Open(path)
	require.NoError(t, err)
	_, err = store.Create(ctx, "buy milk")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "notes file is written at the requested path")

	reopened, err := platform.Open(path)
	require.NoError(t, err)
	assert.Equal(t, store.List(), reopened.List())
	assert.Equal(t, "fs", store.State().(core.StoreState).StorageType)
}

func TestOpen_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := platform.Open("")
	require.NoError(t, err)
	_, err = store.Create(context.Background(), "x")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, platform.SystemDir, platform.DefaultFileName))
	assert.NoError(t, err)
}

func TestOpen_Bolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	store, err := platform.Open(path, platform.WithAdapter(platform.AdapterBolt))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Create(context.Background(), "in a bucket")
	require.NoError(t, err)
	assert.Equal(t, "bolt", store.State().(core.StoreState).StorageType)
}

func TestOpen_CorruptBoltStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store, err := platform.Open(path, platform.WithAdapter(platform.AdapterBolt))
	require.NoError(t, err)
	defer store.Close()

	assert.Empty(t, store.List())
	_, err = store.Create(context.Background(), "fresh start")
	require.NoError(t, err)
	assert.Len(t, store.List(), 1)
}

func TestInit_Adapters(t *testing.T) {
	dir := t.TempDir()

	s, err := platform.Init(filepath.Join(dir, "n.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &fs.Repository{}, s)

	s, err = platform.Init(filepath.Join(dir, "n.db"), platform.WithAdapter(platform.AdapterBolt))
	require.NoError(t, err)
	assert.IsType(t, &bolt.Storage{}, s)
	require.NoError(t, s.(*bolt.Storage).Close())

	_, err = platform.Init(filepath.Join(dir, "n"), platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

type fixedStorage struct{ notes []core.Note }

func (f *fixedStorage) Load(ctx context.Context) ([]core.Note, error) { return f.notes, nil }
func (f *fixedStorage) Save(ctx context.Context, notes []core.Note) error {
	f.notes = notes
	return nil
}

func TestOpen_WithStorage(t *testing.T) {
	injected := &fixedStorage{notes: []core.Note{{ID: "a", Content: "seed"}}}
	gen := func() string { return "fixed-id" }

	store, err := platform.Open("ignored", platform.WithStorage(injected), platform.WithIDGenerator(gen))
	require.NoError(t, err)
	require.Len(t, store.List(), 1)

	note, err := store.Create(context.Background(), "next")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", note.ID)
	assert.Len(t, injected.notes, 2)
}

func TestOpen_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	writable, err := platform.Open(path)
	require.NoError(t, err)
	_, err = writable.Create(ctx, "existing")
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	ro, err := platform.Open(path, platform.WithReadOnly(true))
	require.NoError(t, err)
	require.Len(t, ro.List(), 1)

	_, err = ro.Create(ctx, "in memory only")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.Len(t, ro.List(), 2, "in-memory state stays authoritative")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
