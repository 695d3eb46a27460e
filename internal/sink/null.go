package sink

import "github.com/fenrir-lob/fenrir/internal/domain"

// Null discards every event. Grounded on Listeners.h's EmptyListener;
// intended for benchmarking, where even a synchronous log line would
// dominate the measurement.
type Null struct{}

func (Null) OnOrderAdded(id uint64, price int32, qty uint32, side domain.Side) {}
func (Null) OnOrderCancelled(id uint64)                                       {}
func (Null) OnOrderRejected(id uint64, reason domain.RejectReason)            {}
func (Null) OnTrade(aggressorID, passiveID uint64, price int32, qty uint32)   {}
func (Null) OnOrderBookUpdate(price int32, volume uint32, side domain.Side)   {}

var _ Sink = Null{}
