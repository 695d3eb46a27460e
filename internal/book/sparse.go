package book

import (
	"github.com/fenrir-lob/fenrir/internal/arena"
	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/tidwall/btree"
)

// SparseSideIndex is a SideIndex for price ranges too large or too
// sparsely populated for dense arrays to make sense: a sorted
// associative container keyed by price instead of a fixed array, with
// the same Best/AdvanceIfBetter contract as DenseSideIndex. Occupied
// price ticks are tracked in a btree.BTreeG per side (ordered so the
// tree's minimum is always that side's best price); each Level lives in
// a map keyed by price, created on first rest and pruned lazily by Best
// once a scan steps over an emptied level — the sparse analogue of the
// dense cursor's "catch up on the next submit" discipline.
type SparseSideIndex struct {
	maxPrice int32

	bidPrices *btree.BTreeG[int32]
	askPrices *btree.BTreeG[int32]

	bidLevels map[int32]*Level
	askLevels map[int32]*Level
}

// NewSparse builds a sparse index over ticks (0, maxPrice].
func NewSparse(maxPrice int32) *SparseSideIndex {
	return &SparseSideIndex{
		maxPrice:  maxPrice,
		bidPrices: btree.NewBTreeG(func(a, b int32) bool { return a > b }),
		askPrices: btree.NewBTreeG(func(a, b int32) bool { return a < b }),
		bidLevels: make(map[int32]*Level),
		askLevels: make(map[int32]*Level),
	}
}

func (s *SparseSideIndex) prices(side domain.Side) *btree.BTreeG[int32] {
	if side == domain.Buy {
		return s.bidPrices
	}
	return s.askPrices
}

func (s *SparseSideIndex) levels(side domain.Side) map[int32]*Level {
	if side == domain.Buy {
		return s.bidLevels
	}
	return s.askLevels
}

func (s *SparseSideIndex) LevelForResting(side domain.Side, price int32) *Level {
	levels := s.levels(side)
	if lv, ok := levels[price]; ok {
		return lv
	}
	lv := &Level{Head: arena.None, Tail: arena.None}
	levels[price] = lv
	s.prices(side).Set(price)
	return lv
}

func (s *SparseSideIndex) Level(side domain.Side, price int32) *Level {
	return s.levels(side)[price]
}

func (s *SparseSideIndex) Best(side domain.Side) (int32, bool) {
	prices := s.prices(side)
	levels := s.levels(side)
	for {
		price, ok := prices.Min()
		if !ok {
			return 0, false
		}
		lv := levels[price]
		if !lv.Empty() {
			return price, true
		}
		prices.Delete(price)
		delete(levels, price)
	}
}

// AdvanceIfBetter is a no-op: the btree's ordering makes Best correct
// without a maintained cursor value.
func (s *SparseSideIndex) AdvanceIfBetter(side domain.Side, price int32) {}

func (s *SparseSideIndex) MaxPrice() int32 { return s.maxPrice }
