package book

import (
	"github.com/fenrir-lob/fenrir/internal/arena"
	"github.com/fenrir-lob/fenrir/internal/domain"
)

// DenseSideIndex is the default SideIndex: two arrays, bids[0..MaxPrice]
// and asks[0..MaxPrice], plus running best-price cursors. Grounded on
// original_source/include/OrderBook.h. O(1) amortized submit/cancel.
type DenseSideIndex struct {
	maxPrice int32

	bids []Level
	asks []Level

	// maxBidPrice is a hint: no bid rests above it, and Best scans down
	// from it to the highest non-empty bid. -1 (below any valid price)
	// means no bids exist.
	maxBidPrice int32
	// minAskPrice is a hint: no ask rests below it, and Best scans up
	// from it to the lowest non-empty ask. maxPrice+1 (above any valid
	// price) means no asks exist.
	minAskPrice int32
}

// NewDense builds a dense index over ticks [0, maxPrice].
func NewDense(maxPrice int32) *DenseSideIndex {
	d := &DenseSideIndex{
		maxPrice:    maxPrice,
		bids:        make([]Level, maxPrice+1),
		asks:        make([]Level, maxPrice+1),
		maxBidPrice: -1,
		minAskPrice: maxPrice + 1,
	}
	// A zero-value Level has Head == 0, which collides with a real
	// arena handle — every slot must start at the None sentinel.
	for i := range d.bids {
		d.bids[i].Head, d.bids[i].Tail = arena.None, arena.None
		d.asks[i].Head, d.asks[i].Tail = arena.None, arena.None
	}
	return d
}

func (d *DenseSideIndex) levels(side domain.Side) []Level {
	if side == domain.Buy {
		return d.bids
	}
	return d.asks
}

func (d *DenseSideIndex) LevelForResting(side domain.Side, price int32) *Level {
	return &d.levels(side)[price]
}

func (d *DenseSideIndex) Level(side domain.Side, price int32) *Level {
	return &d.levels(side)[price]
}

func (d *DenseSideIndex) Best(side domain.Side) (int32, bool) {
	if side == domain.Buy {
		for d.maxBidPrice >= 0 {
			if !d.bids[d.maxBidPrice].Empty() {
				return d.maxBidPrice, true
			}
			d.maxBidPrice--
		}
		return 0, false
	}
	for d.minAskPrice <= d.maxPrice {
		if !d.asks[d.minAskPrice].Empty() {
			return d.minAskPrice, true
		}
		d.minAskPrice++
	}
	return 0, false
}

func (d *DenseSideIndex) AdvanceIfBetter(side domain.Side, price int32) {
	if side == domain.Buy {
		if price > d.maxBidPrice {
			d.maxBidPrice = price
		}
		return
	}
	if price < d.minAskPrice {
		d.minAskPrice = price
	}
}

func (d *DenseSideIndex) MaxPrice() int32 { return d.maxPrice }
