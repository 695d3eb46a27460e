package engine

import (
	"testing"

	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/fenrir-lob/fenrir/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *sink.Collecting) {
	c := &sink.Collecting{}
	e := New(Config{ArenaCapacity: 1024, MaxPrice: 1000, MaxOrderID: 1000}, c)
	return e, c
}

func order(id uint64, price int32, qty uint32, side domain.Side) domain.Order {
	return domain.Order{ID: id, Price: price, Quantity: qty, Side: side}
}

// Full match: a resting order is entirely consumed by one aggressor.
func TestFullMatch(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 10, domain.Sell))
	e.Submit(order(2, 100, 10, domain.Buy))

	want := []sink.Event{
		{Kind: sink.KindOrderAdded, ID: 1, Price: 100, Qty: 10, Side: domain.Sell},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 10, Side: domain.Sell},
		{Kind: sink.KindTrade, AggressorID: 2, PassiveID: 1, Price: 100, Qty: 10},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 0, Side: domain.Sell},
	}
	assert.Equal(t, want, c.Events)
}

// Partial fill where the aggressor has quantity left over and rests.
func TestPartialFillAggressorRests(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 10, domain.Sell))
	e.Submit(order(2, 100, 25, domain.Buy))

	want := []sink.Event{
		{Kind: sink.KindOrderAdded, ID: 1, Price: 100, Qty: 10, Side: domain.Sell},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 10, Side: domain.Sell},
		{Kind: sink.KindTrade, AggressorID: 2, PassiveID: 1, Price: 100, Qty: 10},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 0, Side: domain.Sell},
		{Kind: sink.KindOrderAdded, ID: 2, Price: 100, Qty: 15, Side: domain.Buy},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 15, Side: domain.Buy},
	}
	assert.Equal(t, want, c.Events)
}

// Partial fill where the resting order has quantity left over.
func TestPartialFillPassiveRemains(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 20, domain.Sell))
	e.Submit(order(2, 100, 5, domain.Buy))

	want := []sink.Event{
		{Kind: sink.KindOrderAdded, ID: 1, Price: 100, Qty: 20, Side: domain.Sell},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 20, Side: domain.Sell},
		{Kind: sink.KindTrade, AggressorID: 2, PassiveID: 1, Price: 100, Qty: 5},
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 15, Side: domain.Sell},
	}
	assert.Equal(t, want, c.Events)
}

// Multi-level sweep: one aggressor crosses two price levels in one call.
func TestMultiLevelSweep(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 10, domain.Sell))
	e.Submit(order(2, 101, 10, domain.Sell))
	c.Clear()

	e.Submit(order(3, 102, 15, domain.Buy))

	trades := c.ByKind(sink.KindTrade)
	require.Len(t, trades, 2)
	assert.Equal(t, sink.Event{Kind: sink.KindTrade, AggressorID: 3, PassiveID: 1, Price: 100, Qty: 10}, trades[0])
	assert.Equal(t, sink.Event{Kind: sink.KindTrade, AggressorID: 3, PassiveID: 2, Price: 101, Qty: 5}, trades[1])

	added := c.ByKind(sink.KindOrderAdded)
	assert.Empty(t, added, "aggressor order 3 fully filled, should never rest")
}

// FIFO time priority: the older of two same-price resting orders fills first.
func TestFIFOTimePriority(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 10, domain.Sell))
	e.Submit(order(2, 100, 10, domain.Sell))
	c.Clear()

	e.Submit(order(3, 100, 10, domain.Buy))

	trades := c.ByKind(sink.KindTrade)
	require.Len(t, trades, 1, "exactly one trade expected")
	assert.Equal(t, uint64(1), trades[0].PassiveID, "oldest resting order (1) must fill first, not 2")
}

// Every rejection path in one pass.
func TestRejections(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(10, 100, 0, domain.Buy))
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 10, Reason: domain.InvalidQuantity}, c.Events[0])
	c.Clear()

	e.Submit(order(11, -50, 10, domain.Buy))
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 11, Reason: domain.InvalidPrice}, c.Events[0])
	c.Clear()

	e.Submit(order(1, 100, 10, domain.Buy))
	c.Clear()
	e.Submit(order(1, 99, 5, domain.Sell))
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 1, Reason: domain.DuplicateID}, c.Events[0])
	c.Clear()

	e.Cancel(999)
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 999, Reason: domain.OrderNotFound}, c.Events[0])
}

// An id beyond MaxOrderID is rejected outright; the dense lookup array
// is sized MaxOrderID+1 and never indexed with anything larger.
func TestInvalidIDRejected(t *testing.T) {
	e, c := newTestEngine() // MaxOrderID: 1000

	e.Submit(order(1001, 100, 10, domain.Buy))
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 1001, Reason: domain.InvalidID}, c.Events[0])
}

// Cancel on an out-of-range id must also reject without touching the
// lookup array, reported as OrderNotFound just like an in-range but
// never-submitted id.
func TestCancelInvalidIDRejected(t *testing.T) {
	e, c := newTestEngine() // MaxOrderID: 1000

	e.Cancel(1001)
	require.Len(t, c.Events, 1)
	assert.Equal(t, sink.Event{Kind: sink.KindOrderRejected, ID: 1001, Reason: domain.OrderNotFound}, c.Events[0])
}

func TestBoundaryPrices(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 0, 10, domain.Buy))
	assert.Equal(t, domain.InvalidPrice, c.Events[0].Reason)
	c.Clear()

	e.Submit(order(2, 1000, 10, domain.Buy)) // MaxPrice == 1000
	require.Len(t, c.Events, 2)
	assert.Equal(t, sink.KindOrderAdded, c.Events[0].Kind)
	c.Clear()

	e.Submit(order(3, 1001, 10, domain.Buy))
	assert.Equal(t, domain.InvalidPrice, c.Events[0].Reason)
}

func TestArenaExhaustionAfterPartialTrades(t *testing.T) {
	c := &sink.Collecting{}
	e := New(Config{ArenaCapacity: 1, MaxPrice: 1000, MaxOrderID: 1000}, c)

	e.Submit(order(1, 100, 20, domain.Sell)) // consumes the only arena slot
	c.Clear()

	e.Submit(order(2, 100, 25, domain.Buy)) // trades 20, then fails to rest 5

	trades := c.ByKind(sink.KindTrade)
	require.Len(t, trades, 1)
	assert.Equal(t, uint32(20), trades[0].Qty, "partial trade before exhaustion remains final")

	rejects := c.ByKind(sink.KindOrderRejected)
	require.Len(t, rejects, 1)
	assert.Equal(t, domain.SystemFull, rejects[0].Reason)

	added := c.ByKind(sink.KindOrderAdded)
	assert.Empty(t, added)
}

func TestCancelRoundTrip(t *testing.T) {
	e, c := newTestEngine()

	e.Submit(order(1, 100, 10, domain.Buy))
	c.Clear()

	e.Cancel(1)
	want := []sink.Event{
		{Kind: sink.KindOrderBookUpdate, Price: 100, Volume: 0, Side: domain.Buy},
		{Kind: sink.KindOrderCancelled, ID: 1},
	}
	assert.Equal(t, want, c.Events)

	c.Clear()
	e.Cancel(1)
	require.Len(t, c.Events, 1)
	assert.Equal(t, domain.OrderNotFound, c.Events[0].Reason, "cancelling an already-cancelled id is indistinguishable from never-submitted")
}
