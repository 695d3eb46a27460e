// Package arena implements the order pool: a preallocated, fixed-capacity
// slice of order slots addressed by stable integer handles, backed by a
// LIFO free list. No slot is handed out again while a FIFO still links
// to it — the engine always finishes updating level head/tail before
// calling Deallocate.
package arena

import "github.com/fenrir-lob/fenrir/internal/domain"

// Handle is a stable index into the arena identifying a resting order.
// None is the sentinel for "no order" (used by Order.Prev/Next and by
// callers to detect allocation failure).
type Handle int32

const None Handle = -1

// Order is a resting order slot: caller identity plus the intrusive
// doubly-linked list pointers used by the FIFO at its price level.
type Order struct {
	ID       uint64
	Price    int32
	Quantity uint32
	Side     domain.Side
	Prev     Handle
	Next     Handle
}

// Pool is a fixed-capacity arena of Order slots.
type Pool struct {
	slots []Order
	free  []Handle // LIFO free list; order of reuse is unspecified
}

// New preallocates a pool of the given capacity. Capacity is fixed for
// the pool's lifetime — the engine never resizes it on the hot path.
func New(capacity int) *Pool {
	p := &Pool{
		slots: make([]Order, capacity),
		free:  make([]Handle, capacity),
	}
	// Push handles in descending order so popping yields 0, 1, 2, ...
	// on a fresh pool — a convenience for tests, not a guarantee callers
	// may rely on.
	for i := capacity - 1; i >= 0; i-- {
		p.free[capacity-1-i] = Handle(i)
	}
	return p
}

// Cap returns the pool's fixed capacity.
func (p *Pool) Cap() int { return len(p.slots) }

// Len returns the number of currently allocated (in-use) slots.
func (p *Pool) Len() int { return len(p.slots) - len(p.free) }

// Allocate pops a free slot and installs the given order fields, with
// Prev/Next reset to None. Returns None if the pool is exhausted.
func (p *Pool) Allocate(id uint64, price int32, qty uint32, side domain.Side) Handle {
	n := len(p.free)
	if n == 0 {
		return None
	}
	h := p.free[n-1]
	p.free = p.free[:n-1]

	p.slots[h] = Order{
		ID:       id,
		Price:    price,
		Quantity: qty,
		Side:     side,
		Prev:     None,
		Next:     None,
	}
	return h
}

// Deallocate returns a slot to the free list. The caller must have
// already unlinked it from any FIFO it belonged to.
func (p *Pool) Deallocate(h Handle) {
	p.free = append(p.free, h)
}

// Get returns a pointer to the order installed at h. The pointer is
// stable for the pool's lifetime as long as h remains allocated — the
// backing slice is never reallocated after New.
func (p *Pool) Get(h Handle) *Order {
	return &p.slots[h]
}
