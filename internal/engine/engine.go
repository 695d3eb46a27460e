// Package engine implements the matching engine: the public
// Submit/Cancel entry points, the matching loop, and event emission.
// Grounded on original_source/include/OrderBook.h
// (submitOrder/cancelOrder/matchOrder/matchWithLevel/addOrder).
package engine

import (
	"github.com/fenrir-lob/fenrir/internal/arena"
	"github.com/fenrir-lob/fenrir/internal/book"
	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/fenrir-lob/fenrir/internal/sink"
	"github.com/rs/zerolog/log"
)

// Engine is a single-instrument limit order book. It is not safe for
// concurrent use — it is a single-writer data structure; a host that
// needs concurrency serializes calls itself (internal/gateway does this
// for the TCP demo server).
type Engine struct {
	cfg   Config
	pool  *arena.Pool
	index book.SideIndex
	// lookup maps order ID to arena handle. arena.None means "not
	// resident". Sized MaxOrderID+1 — a dense array instead of a hash
	// map, since the ID space is small and bounded for this embeddable
	// core's intended use.
	lookup []arena.Handle
	sink   sink.Sink
}

// New constructs an Engine with the given configuration and sink. The
// sink is externally owned and borrowed for the engine's lifetime.
func New(cfg Config, snk sink.Sink) *Engine {
	lookup := make([]arena.Handle, cfg.MaxOrderID+1)
	for i := range lookup {
		lookup[i] = arena.None
	}

	log.Debug().
		Int("arenaCapacity", cfg.ArenaCapacity).
		Int32("maxPrice", cfg.MaxPrice).
		Uint64("maxOrderId", cfg.MaxOrderID).
		Bool("sparse", cfg.Sparse).
		Msg("constructing matching engine")

	return &Engine{
		cfg:   cfg,
		pool:  arena.New(cfg.ArenaCapacity),
		index: book.New(book.Config{MaxPrice: cfg.MaxPrice, Sparse: cfg.Sparse}),
		lookup: lookup,
		sink:   snk,
	}
}

// Submit validates, matches, and — if quantity remains — rests the given
// order. Validation runs quantity, then price, then ID range, then
// duplicate-ID, in that order; no operation here may fail with a Go
// error, only a reported OrderRejected. If the arena is full when the
// call begins, slots freed by this call's fills are not reused for its
// residual: the residual is rejected with SystemFull after its trades.
func (e *Engine) Submit(o domain.Order) {
	if o.Quantity == 0 {
		e.sink.OnOrderRejected(o.ID, domain.InvalidQuantity)
		return
	}
	if o.Price <= 0 || o.Price > e.cfg.MaxPrice {
		e.sink.OnOrderRejected(o.ID, domain.InvalidPrice)
		return
	}
	if o.ID > e.cfg.MaxOrderID {
		e.sink.OnOrderRejected(o.ID, domain.InvalidID)
		return
	}
	if e.lookup[o.ID] != arena.None {
		e.sink.OnOrderRejected(o.ID, domain.DuplicateID)
		return
	}

	arenaFull := e.pool.Len() == e.pool.Cap()

	agg := o // the aggressor's residual quantity is mutated by matching
	e.match(&agg)
	if agg.Quantity > 0 {
		if arenaFull {
			log.Warn().Uint64("id", agg.ID).Msg("arena exhausted, rejecting residual")
			e.sink.OnOrderRejected(agg.ID, domain.SystemFull)
			return
		}
		e.rest(&agg)
	}
}

// Cancel removes a resting order, reporting OrderNotFound if it is not
// (or is no longer) resident — terminal states leave no residual
// bookkeeping to distinguish "filled", "cancelled", and "never
// submitted".
func (e *Engine) Cancel(id uint64) {
	if id > e.cfg.MaxOrderID {
		e.sink.OnOrderRejected(id, domain.OrderNotFound)
		return
	}
	h := e.lookup[id]
	if h == arena.None {
		e.sink.OnOrderRejected(id, domain.OrderNotFound)
		return
	}

	order := e.pool.Get(h)
	level := e.index.Level(order.Side, order.Price)

	level.TotalVolume -= order.Quantity
	e.sink.OnOrderBookUpdate(order.Price, level.TotalVolume, order.Side)

	e.unlink(level, order)

	e.pool.Deallocate(h)
	e.lookup[id] = arena.None
	e.sink.OnOrderCancelled(id)
}

// match crosses agg against the opposing side, consuming resting levels
// in price/time priority until agg is filled or no more levels cross.
func (e *Engine) match(agg *domain.Order) {
	opposing := domain.Sell
	if agg.Side == domain.Sell {
		opposing = domain.Buy
	}

	for agg.Quantity > 0 {
		price, ok := e.index.Best(opposing)
		if !ok {
			break
		}
		if agg.Side == domain.Buy && price > agg.Price {
			break
		}
		if agg.Side == domain.Sell && price < agg.Price {
			break
		}

		level := e.index.Level(opposing, price)
		e.matchAtLevel(agg, level, price)
	}
}

// matchAtLevel drains level's FIFO head-first against agg until either
// is exhausted, emitting a Trade + OrderBookUpdate pair per fill.
func (e *Engine) matchAtLevel(agg *domain.Order, level *book.Level, price int32) {
	for !level.Empty() && agg.Quantity > 0 {
		restingHandle := level.Head
		resting := e.pool.Get(restingHandle)

		traded := agg.Quantity
		if resting.Quantity < traded {
			traded = resting.Quantity
		}

		agg.Quantity -= traded
		resting.Quantity -= traded
		level.TotalVolume -= traded

		e.sink.OnTrade(agg.ID, resting.ID, price, traded)
		e.sink.OnOrderBookUpdate(price, level.TotalVolume, resting.Side)

		if resting.Quantity == 0 {
			next := resting.Next
			level.Head = next
			if next != arena.None {
				e.pool.Get(next).Prev = arena.None
			} else {
				level.Tail = arena.None
			}
			e.lookup[resting.ID] = arena.None
			e.pool.Deallocate(restingHandle)
		}
	}
}

// rest allocates an arena slot for agg's residual quantity and appends
// it to its price level's FIFO. Arena exhaustion here is a partial
// failure: trades already emitted by match remain final.
func (e *Engine) rest(agg *domain.Order) {
	handle := e.pool.Allocate(agg.ID, agg.Price, agg.Quantity, agg.Side)
	if handle == arena.None {
		log.Warn().Uint64("id", agg.ID).Msg("arena exhausted, rejecting residual")
		e.sink.OnOrderRejected(agg.ID, domain.SystemFull)
		return
	}

	level := e.index.LevelForResting(agg.Side, agg.Price)
	order := e.pool.Get(handle)

	if level.Empty() {
		level.Head = handle
		level.Tail = handle
	} else {
		e.pool.Get(level.Tail).Next = handle
		order.Prev = level.Tail
		level.Tail = handle
	}

	level.TotalVolume += agg.Quantity
	e.lookup[agg.ID] = handle
	e.index.AdvanceIfBetter(agg.Side, agg.Price)

	e.sink.OnOrderAdded(agg.ID, agg.Price, agg.Quantity, agg.Side)
	e.sink.OnOrderBookUpdate(agg.Price, level.TotalVolume, agg.Side)
}

// unlink removes order's slot from level's FIFO, updating head/tail and
// the sibling links that would otherwise point at it.
func (e *Engine) unlink(level *book.Level, order *arena.Order) {
	if order.Prev != arena.None {
		e.pool.Get(order.Prev).Next = order.Next
	} else {
		level.Head = order.Next
	}
	if order.Next != arena.None {
		e.pool.Get(order.Next).Prev = order.Prev
	} else {
		level.Tail = order.Prev
	}
}
