// Package sink defines the event sink contract — the only interface the
// engine consumes — and three reference implementations: a console
// printer, a null sink, and a collecting sink. Grounded on
// original_source/include/Listeners.h (ConsoleListener, EmptyListener,
// VectorListener).
package sink

import "github.com/fenrir-lob/fenrir/internal/domain"

// Sink receives every state-change event the engine produces. Every
// method must be non-blocking; the engine calls into it synchronously on
// the calling goroutine and holds no long-lived reference to sink-
// internal state.
type Sink interface {
	// OnOrderAdded reports that an order just became resting. qty is its
	// remaining quantity after any matching.
	OnOrderAdded(id uint64, price int32, qty uint32, side domain.Side)

	// OnOrderCancelled reports that a previously resting order is gone.
	OnOrderCancelled(id uint64)

	// OnOrderRejected reports that submit or cancel was refused.
	OnOrderRejected(id uint64, reason domain.RejectReason)

	// OnTrade reports one matched fill of qty at price.
	OnTrade(aggressorID, passiveID uint64, price int32, qty uint32)

	// OnOrderBookUpdate reports that the aggregate resting volume at
	// price on side is now volume (zero means the level is empty).
	OnOrderBookUpdate(price int32, volume uint32, side domain.Side)
}
