// Package book implements the price level and two side-index strategies:
// a dense, array-indexed index for bounded price ranges, and a sparse,
// btree-backed index for unbounded or sparsely populated ones.
package book

import "github.com/fenrir-lob/fenrir/internal/arena"

// Level is the FIFO of resting orders at one price on one side. It is
// "empty" iff Head == arena.None; empty levels remain allocated (in the
// dense index) but contribute nothing to matching.
type Level struct {
	Head        arena.Handle
	Tail        arena.Handle
	TotalVolume uint32
}

// Empty reports whether no order currently rests at this level.
func (l *Level) Empty() bool {
	return l.Head == arena.None
}
