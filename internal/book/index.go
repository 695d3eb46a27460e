package book

import "github.com/fenrir-lob/fenrir/internal/domain"

// SideIndex indexes resting levels by (side, price) and tracks the best
// price on each side. All methods that take a `side` parameter mean "the
// side the resting levels belong to" — e.g. Best(domain.Sell) returns the
// best (lowest) ask, the price a Buy aggressor would cross against.
//
// Cursor discipline: the best price is a hint. Best advances it inward,
// scanning past — and for the sparse implementation, pruning — levels
// left empty by a prior cancel. Cancel never retreats it; that is the
// caller's (engine's) job to avoid, not this interface's.
type SideIndex interface {
	// LevelForResting returns the level at (side, price), creating the
	// backing storage if this is the first order ever to rest there.
	LevelForResting(side domain.Side, price int32) *Level

	// Level returns the level at (side, price). The level must already
	// exist (an order currently resting there put it there).
	Level(side domain.Side, price int32) *Level

	// Best scans from the cached cursor outward until it finds a
	// non-empty level, updates the cursor, and returns its price. ok is
	// false if no level on that side is occupied.
	Best(side domain.Side) (price int32, ok bool)

	// AdvanceIfBetter moves the side's cursor inward if price beats it.
	// Called once, from the resting phase of submit.
	AdvanceIfBetter(side domain.Side, price int32)

	// MaxPrice returns the configured upper bound on price ticks.
	MaxPrice() int32
}
