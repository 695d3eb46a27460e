package sink

import (
	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/rs/zerolog"
)

// Print emits a structured zerolog line per event. Grounded on
// Listeners.h's ConsoleListener, adapted from raw std::cout lines to
// zerolog's structured log.Info()/log.Error() style.
type Print struct {
	Logger zerolog.Logger
}

func (p Print) OnOrderAdded(id uint64, price int32, qty uint32, side domain.Side) {
	p.Logger.Info().
		Uint64("id", id).
		Int32("price", price).
		Uint32("qty", qty).
		Str("side", side.String()).
		Msg("order added")
}

func (p Print) OnOrderCancelled(id uint64) {
	p.Logger.Info().Uint64("id", id).Msg("order cancelled")
}

func (p Print) OnOrderRejected(id uint64, reason domain.RejectReason) {
	p.Logger.Warn().
		Uint64("id", id).
		Str("reason", reason.String()).
		Msg("order rejected")
}

func (p Print) OnTrade(aggressorID, passiveID uint64, price int32, qty uint32) {
	p.Logger.Info().
		Uint64("aggressorId", aggressorID).
		Uint64("passiveId", passiveID).
		Int32("price", price).
		Uint32("qty", qty).
		Msg("trade executed")
}

func (p Print) OnOrderBookUpdate(price int32, volume uint32, side domain.Side) {
	p.Logger.Debug().
		Int32("price", price).
		Uint32("volume", volume).
		Str("side", side.String()).
		Msg("book update")
}

var _ Sink = Print{}
