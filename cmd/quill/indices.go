package main

import (
	"fmt"

	"github.com/aretw0/quill/pkg/core"
)

// resolveIndices maps list positions to note ids.
func resolveIndices(notes []core.Note, indices []int) ([]string, error) {
	ids := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(notes) {
			return nil, fmt.Errorf("position %d out of range [0, %d)", i, len(notes))
		}
		ids = append(ids, notes[i].ID)
	}
	return ids, nil
}
