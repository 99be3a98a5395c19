package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/core"
)

func listJSON(t *testing.T, dir, bin string) []core.Note {
	t.Helper()
	var notes []core.Note
	out := runCmd(t, dir, bin, "list", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &notes), out)
	return notes
}

func contents(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Content
	}
	return out
}

func TestCLI_Lifecycle(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quill-cli-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	bin := buildQuillBinary(t, tempDir)
	runCmd(t, tempDir, bin, "init")
	_, err = os.Stat(filepath.Join(tempDir, "quill.yaml"))
	require.NoError(t, err)

	for _, c := range []string{"buy milk", "call mom", "water plants"} {
		out := runCmd(t, tempDir, bin, "add", c)
		assert.Contains(t, out, "Note added:")
	}
	assert.Equal(t, []string{"buy milk", "call mom", "water plants"}, contents(listJSON(t, tempDir, bin)))

	t.Run("Move", func(t *testing.T) {
		runCmd(t, tempDir, bin, "move", "--from", "0", "--to", "2")
		assert.Equal(t, []string{"call mom", "buy milk", "water plants"}, contents(listJSON(t, tempDir, bin)))
	})

	t.Run("Edit", func(t *testing.T) {
		notes := listJSON(t, tempDir, bin)
		runCmd(t, tempDir, bin, "edit", notes[1].ID, "buy", "oat", "milk")
		after := listJSON(t, tempDir, bin)
		assert.Equal(t, "buy oat milk", after[1].Content)
		assert.Equal(t, notes[1].ID, after[1].ID)
	})

	t.Run("Edit Unknown", func(t *testing.T) {
		out, err := runCmdErr(tempDir, bin, "edit", "nope", "text")
		assert.Error(t, err)
		assert.Contains(t, out, "note not found")
	})

	t.Run("Delete", func(t *testing.T) {
		notes := listJSON(t, tempDir, bin)
		out := runCmd(t, tempDir, bin, "delete", "--index", "2", notes[0].ID, "unknown-id")
		assert.Contains(t, out, "Notes deleted: 2")
		assert.Equal(t, []string{"buy oat milk"}, contents(listJSON(t, tempDir, bin)))
	})

	t.Run("Plain List", func(t *testing.T) {
		out := runCmd(t, tempDir, bin, "list")
		assert.True(t, strings.HasPrefix(out, "  0  "), out)
		assert.Contains(t, out, "buy oat milk")
	})

	t.Run("State", func(t *testing.T) {
		var state core.StoreState
		out := runCmd(t, tempDir, bin, "state")
		require.NoError(t, json.Unmarshal([]byte(out), &state), out)
		assert.Equal(t, 1, state.NoteCount)
		assert.Equal(t, "fs", state.StorageType)
		assert.Equal(t, filepath.Join(tempDir, "notes.json"), state.Location)
	})
}

func TestCLI_CorruptFileStartsEmpty(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quill-cli-corrupt")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	bin := buildQuillBinary(t, tempDir)
	notes := filepath.Join(tempDir, "broken.json")
	require.NoError(t, os.WriteFile(notes, []byte("{not json"), 0o644))

	out := runCmd(t, tempDir, bin, "--path", notes, "list")
	assert.Contains(t, out, "No notes.")
}
