package sink

import "github.com/fenrir-lob/fenrir/internal/domain"

// EventKind tags which Sink method produced an Event, so tests can
// assert on exact event traces.
type EventKind uint8

const (
	KindOrderAdded EventKind = iota
	KindOrderCancelled
	KindOrderRejected
	KindTrade
	KindOrderBookUpdate
)

// Event is a single recorded call, with only the fields relevant to its
// Kind populated.
type Event struct {
	Kind EventKind

	ID          uint64 // OrderAdded, OrderCancelled, OrderRejected
	AggressorID uint64 // Trade
	PassiveID   uint64 // Trade
	Price       int32  // OrderAdded, Trade, OrderBookUpdate
	Qty         uint32 // OrderAdded, Trade
	Volume      uint32 // OrderBookUpdate
	Side        domain.Side
	Reason      domain.RejectReason
}

// Collecting appends every event, in call order, to Events; ByKind
// filters that one list by kind on demand. Grounded on Listeners.h's
// VectorListener; used throughout the test suite.
type Collecting struct {
	Events []Event
}

func (c *Collecting) OnOrderAdded(id uint64, price int32, qty uint32, side domain.Side) {
	c.Events = append(c.Events, Event{Kind: KindOrderAdded, ID: id, Price: price, Qty: qty, Side: side})
}

func (c *Collecting) OnOrderCancelled(id uint64) {
	c.Events = append(c.Events, Event{Kind: KindOrderCancelled, ID: id})
}

func (c *Collecting) OnOrderRejected(id uint64, reason domain.RejectReason) {
	c.Events = append(c.Events, Event{Kind: KindOrderRejected, ID: id, Reason: reason})
}

func (c *Collecting) OnTrade(aggressorID, passiveID uint64, price int32, qty uint32) {
	c.Events = append(c.Events, Event{Kind: KindTrade, AggressorID: aggressorID, PassiveID: passiveID, Price: price, Qty: qty})
}

func (c *Collecting) OnOrderBookUpdate(price int32, volume uint32, side domain.Side) {
	c.Events = append(c.Events, Event{Kind: KindOrderBookUpdate, Price: price, Volume: volume, Side: side})
}

// ByKind filters Events down to one kind, preserving order.
func (c *Collecting) ByKind(kind EventKind) []Event {
	var out []Event
	for _, e := range c.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Clear empties the recorded events, for reuse across test cases.
func (c *Collecting) Clear() {
	c.Events = nil
}

var _ Sink = (*Collecting)(nil)
