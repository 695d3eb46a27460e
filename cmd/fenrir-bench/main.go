// Command fenrir-bench drives an in-process Engine with a synthetic
// order flow and reports throughput, for backtesters and simulators that
// want the matching core without the TCP gateway in front of it.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/fenrir-lob/fenrir/internal/engine"
	"github.com/fenrir-lob/fenrir/internal/sink"
	"github.com/google/uuid"
)

func main() {
	orders := flag.Int("orders", 1_000_000, "number of synthetic orders to submit")
	maxPrice := flag.Int("max-price", 10_000, "price range, in ticks, the synthetic flow spans")
	arenaCapacity := flag.Int("arena-capacity", 2_000_000, "engine arena capacity")
	seed := flag.Int64("seed", 1, "PRNG seed for the synthetic order flow")
	sparse := flag.Bool("sparse", false, "use the sparse (btree-backed) price index instead of dense arrays")
	flag.Parse()

	runID := uuid.New()
	cfg := engine.Config{
		ArenaCapacity: *arenaCapacity,
		MaxPrice:      int32(*maxPrice),
		MaxOrderID:    uint64(*orders) + 1,
		Sparse:        *sparse,
	}
	e := engine.New(cfg, sink.Null{})

	rng := rand.New(rand.NewSource(*seed))

	start := time.Now()
	for i := 1; i <= *orders; i++ {
		price := int32(rng.Intn(*maxPrice) + 1)
		qty := uint32(rng.Intn(100) + 1)
		side := domain.Buy
		if rng.Intn(2) == 1 {
			side = domain.Sell
		}
		e.Submit(domain.Order{ID: uint64(i), Price: price, Quantity: qty, Side: side})
	}
	elapsed := time.Since(start)

	fmt.Printf("run=%s orders=%d elapsed=%s orders/sec=%.0f sparse=%v\n",
		runID, *orders, elapsed, float64(*orders)/elapsed.Seconds(), *sparse)
}
