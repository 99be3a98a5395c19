package core

import "fmt"

// moveIndices returns a new slice where the elements at the positions in from
// are removed and reinserted, in their original relative order, just before
// position to of the original slice.
//
// This matches the behaviour of list drag-and-drop: [A B C] with from={0}
// and to=2 yields [B A C].
func moveIndices(notes []Note, from []int, to int) ([]Note, error) {
	n := len(notes)
	if to < 0 || to > n {
		return nil, fmt.Errorf("%w: destination %d out of range [0, %d]", ErrValidation, to, n)
	}

	selected := make(map[int]bool, len(from))
	for _, i := range from {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: source index %d out of range [0, %d)", ErrValidation, i, n)
		}
		selected[i] = true
	}
	if len(selected) == 0 {
		return cloneNotes(notes), nil
	}

	moved := make([]Note, 0, len(selected))
	rest := make([]Note, 0, n-len(selected))
	shift := 0
	for i, note := range notes {
		if selected[i] {
			moved = append(moved, note)
			if i < to {
				shift++
			}
			continue
		}
		rest = append(rest, note)
	}

	at := to - shift
	out := make([]Note, 0, n)
	out = append(out, rest[:at]...)
	out = append(out, moved...)
	out = append(out, rest[at:]...)
	return out, nil
}
