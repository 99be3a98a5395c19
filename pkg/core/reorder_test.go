package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lettered(ids ...string) []Note {
	notes := make([]Note, len(ids))
	for i, id := range ids {
		notes[i] = Note{ID: id}
	}
	return notes
}

func TestMoveIndices(t *testing.T) {
	tests := []struct {
		name string
		from []int
		to   int
		want string
	}{
		{"Forward Single", []int{0}, 2, "BACDE"},
		{"To End", []int{0}, 5, "BCDEA"},
		{"Backward Single", []int{4}, 0, "EABCD"},
		{"Onto Itself", []int{2}, 2, "ABCDE"},
		{"Just After Itself", []int{2}, 3, "ABCDE"},
		{"Scattered Forward", []int{0, 2}, 4, "BDACE"},
		{"Scattered Around Target", []int{1, 4}, 3, "ACBED"},
		{"Unordered Set Keeps Relative Order", []int{3, 1}, 0, "BDACE"},
		{"Duplicates Collapse", []int{1, 1}, 5, "ACDEB"},
		{"Empty Selection", nil, 3, "ABCDE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := moveIndices(lettered("A", "B", "C", "D", "E"), tt.from, tt.to)
			require.NoError(t, err)
			s := ""
			for _, n := range got {
				s += n.ID
			}
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestMoveIndices_DoesNotMutateInput(t *testing.T) {
	in := lettered("A", "B", "C")
	_, err := moveIndices(in, []int{0}, 3)
	require.NoError(t, err)
	assert.Equal(t, lettered("A", "B", "C"), in)
}

func TestMoveIndices_Validation(t *testing.T) {
	in := lettered("A", "B")
	_, err := moveIndices(in, []int{2}, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = moveIndices(in, []int{0}, -1)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = moveIndices(in, []int{0}, 3)
	assert.ErrorIs(t, err, ErrValidation)

	got, err := moveIndices(nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
