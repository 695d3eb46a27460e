package book

import (
	"testing"

	"github.com/fenrir-lob/fenrir/internal/arena"
	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexes(maxPrice int32) map[string]SideIndex {
	return map[string]SideIndex{
		"dense":  NewDense(maxPrice),
		"sparse": NewSparse(maxPrice),
	}
}

func TestBestEmptySide(t *testing.T) {
	for name, idx := range newIndexes(100) {
		t.Run(name, func(t *testing.T) {
			_, ok := idx.Best(domain.Buy)
			assert.False(t, ok)
			_, ok = idx.Best(domain.Sell)
			assert.False(t, ok)
		})
	}
}

func TestAdvanceIfBetterTracksBestBid(t *testing.T) {
	for name, idx := range newIndexes(100) {
		t.Run(name, func(t *testing.T) {
			lvl := idx.LevelForResting(domain.Buy, 50)
			lvl.Head = 1
			idx.AdvanceIfBetter(domain.Buy, 50)

			price, ok := idx.Best(domain.Buy)
			require.True(t, ok)
			assert.Equal(t, int32(50), price)

			lvl2 := idx.LevelForResting(domain.Buy, 60)
			lvl2.Head = 2
			idx.AdvanceIfBetter(domain.Buy, 60)

			price, ok = idx.Best(domain.Buy)
			require.True(t, ok)
			assert.Equal(t, int32(60), price, "higher bid should become best")
		})
	}
}

func TestAdvanceIfBetterTracksBestAsk(t *testing.T) {
	for name, idx := range newIndexes(100) {
		t.Run(name, func(t *testing.T) {
			lvl := idx.LevelForResting(domain.Sell, 60)
			lvl.Head = 1
			idx.AdvanceIfBetter(domain.Sell, 60)

			lvl2 := idx.LevelForResting(domain.Sell, 50)
			lvl2.Head = 2
			idx.AdvanceIfBetter(domain.Sell, 50)

			price, ok := idx.Best(domain.Sell)
			require.True(t, ok)
			assert.Equal(t, int32(50), price, "lower ask should become best")
		})
	}
}

func TestBestSkipsEmptyLevels(t *testing.T) {
	for name, idx := range newIndexes(100) {
		t.Run(name, func(t *testing.T) {
			top := idx.LevelForResting(domain.Sell, 50)
			top.Head = 1
			idx.AdvanceIfBetter(domain.Sell, 50)

			// Emptying the best level (as cancel would, without
			// retreating the cursor) must not make Best forget the
			// next-best occupied level.
			top.Head = arena.None

			next := idx.LevelForResting(domain.Sell, 55)
			next.Head = 2

			price, ok := idx.Best(domain.Sell)
			require.True(t, ok)
			assert.Equal(t, int32(55), price)
		})
	}
}
