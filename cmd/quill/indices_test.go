package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/core"
)

func TestResolveIndices(t *testing.T) {
	notes := []core.Note{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	ids, err := resolveIndices(notes, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids)

	_, err = resolveIndices(notes, []int{3})
	assert.Error(t, err)
	_, err = resolveIndices(notes, []int{-1})
	assert.Error(t, err)
}

func TestPrintNotes(t *testing.T) {
	var buf bytes.Buffer
	printNotes(&buf, nil)
	assert.Equal(t, "No notes.\n", buf.String())

	buf.Reset()
	ts := time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)
	printNotes(&buf, []core.Note{{ID: "a", Content: "title\nbody", Timestamp: ts}})
	assert.Equal(t, "  0  a  2024-01-02 03:04  title …\n", buf.String())
}
