package gateway

import (
	"net"
	"sync"

	"github.com/fenrir-lob/fenrir/internal/domain"
	fnet "github.com/fenrir-lob/fenrir/internal/net"
	"github.com/rs/zerolog/log"
)

// routingSink implements sink.Sink for the TCP gateway. It is driven
// entirely from the single goroutine that serializes calls into the
// engine, so owners and current need no locking; only the session
// registry is touched from the connection-accept path too, so that map
// is guarded separately.
type routingSink struct {
	mu       sync.Mutex
	sessions map[net.Conn]struct{}

	// owners maps a resting order's ID to the connection that submitted
	// it, so a later Trade or Cancel can route a Report back to it.
	owners map[uint64]net.Conn

	// current is the connection driving the in-flight Submit/Cancel
	// call; set by the processor goroutine immediately before calling
	// into the engine.
	current net.Conn
}

func newRoutingSink() *routingSink {
	return &routingSink{
		sessions: make(map[net.Conn]struct{}),
		owners:   make(map[uint64]net.Conn),
	}
}

func (s *routingSink) addSession(c net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[c] = struct{}{}
}

func (s *routingSink) removeSession(c net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, c)
}

func (s *routingSink) setCurrent(c net.Conn) { s.current = c }

func (s *routingSink) send(c net.Conn, r fnet.Report) {
	if c == nil {
		return
	}
	if _, err := c.Write(r.Serialize()); err != nil {
		log.Error().Err(err).Str("remote", c.RemoteAddr().String()).Msg("failed writing report")
	}
}

func (s *routingSink) broadcast(r fnet.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.sessions {
		if _, err := c.Write(r.Serialize()); err != nil {
			log.Error().Err(err).Str("remote", c.RemoteAddr().String()).Msg("failed broadcasting report")
		}
	}
}

func (s *routingSink) OnOrderAdded(id uint64, price int32, qty uint32, side domain.Side) {
	s.owners[id] = s.current
	s.send(s.current, fnet.Report{Kind: fnet.ReportOrderAdded, ID: id, Price: price, Qty: qty, Side: side})
}

func (s *routingSink) OnOrderCancelled(id uint64) {
	owner := s.owners[id]
	delete(s.owners, id)
	if owner == nil {
		owner = s.current
	}
	s.send(owner, fnet.Report{Kind: fnet.ReportOrderCancelled, ID: id})
}

func (s *routingSink) OnOrderRejected(id uint64, reason domain.RejectReason) {
	s.send(s.current, fnet.Report{Kind: fnet.ReportOrderRejected, ID: id, Reason: reason})
}

func (s *routingSink) OnTrade(aggressorID, passiveID uint64, price int32, qty uint32) {
	// A trade never reveals whether the passive order was fully drained
	// or still rests with less quantity, so its owners entry is left in
	// place either way: a later Cancel on a gone ID reports OrderNotFound
	// regardless, and a resubmitted ID overwrites the entry on its next
	// OnOrderAdded.
	report := fnet.Report{Kind: fnet.ReportTrade, AggressorID: aggressorID, PassiveID: passiveID, Price: price, Qty: qty}
	s.send(s.current, report)
	if passiveOwner := s.owners[passiveID]; passiveOwner != nil && passiveOwner != s.current {
		s.send(passiveOwner, report)
	}
}

func (s *routingSink) OnOrderBookUpdate(price int32, volume uint32, side domain.Side) {
	s.broadcast(fnet.Report{Kind: fnet.ReportOrderBookUpdate, Price: price, Volume: volume, Side: side})
}
