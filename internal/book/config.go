package book

// Config selects and sizes a SideIndex implementation.
type Config struct {
	// MaxPrice is the highest admissible price tick (inclusive).
	MaxPrice int32
	// Sparse selects SparseSideIndex (btree-backed) over the default
	// DenseSideIndex (array-backed). Use for very large or effectively
	// unbounded price ranges.
	Sparse bool
}

// New builds the SideIndex selected by cfg.
func New(cfg Config) SideIndex {
	if cfg.Sparse {
		return NewSparse(cfg.MaxPrice)
	}
	return NewDense(cfg.MaxPrice)
}

var (
	_ SideIndex = (*DenseSideIndex)(nil)
	_ SideIndex = (*SparseSideIndex)(nil)
)
