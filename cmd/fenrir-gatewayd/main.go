package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenrir-lob/fenrir/internal/engine"
	"github.com/fenrir-lob/fenrir/internal/gateway"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	address := flag.String("address", "0.0.0.0:9001", "TCP address to listen on")
	arenaCapacity := flag.Int("arena-capacity", engine.DefaultConfig().ArenaCapacity, "maximum number of resting orders")
	maxPrice := flag.Int("max-price", int(engine.DefaultConfig().MaxPrice), "highest valid price tick")
	maxOrderID := flag.Uint64("max-order-id", engine.DefaultConfig().MaxOrderID, "highest valid caller-supplied order id")
	sparse := flag.Bool("sparse", false, "use the sparse (btree-backed) price index instead of dense arrays")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := engine.Config{
		ArenaCapacity: *arenaCapacity,
		MaxPrice:      int32(*maxPrice),
		MaxOrderID:    *maxOrderID,
		Sparse:        *sparse,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := gateway.New(*address, cfg)
	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("gateway exited with error")
		}
	}()

	<-ctx.Done()
	srv.Shutdown()
}
