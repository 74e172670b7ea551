// Package reorder holds the client-side ordering model of a board: the
// Reinsert primitive and the Controller that applies drops to a local copy.
package reorder

// Reinsert returns a new slice with seq[from] removed and placed at index to
// of the shortened sequence. seq is never modified.
//
// Callers must pass 0 <= from < len(seq) and 0 <= to < len(seq); the
// Controller checks bounds before calling.
func Reinsert[T any](seq []T, from, to int) []T {
	out := make([]T, 0, len(seq))
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)

	moved := seq[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}

// removeAt returns a copy of seq without the element at i.
func removeAt[T any](seq []T, i int) ([]T, T) {
	out := make([]T, 0, len(seq))
	out = append(out, seq[:i]...)
	out = append(out, seq[i+1:]...)
	return out, seq[i]
}

// insertAt returns a copy of seq with v placed at index i (0 <= i <= len(seq)).
func insertAt[T any](seq []T, i int, v T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, seq[:i]...)
	out = append(out, v)
	out = append(out, seq[i:]...)
	return out
}
