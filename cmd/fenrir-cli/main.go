package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fenrir-lob/fenrir/internal/domain"
	fnet "github.com/fenrir-lob/fenrir/internal/net"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the gateway")
	action := flag.String("action", "place", "action to perform: 'place' or 'cancel'")

	id := flag.Uint64("id", 0, "order id (compulsory)")
	sideStr := flag.String("side", "buy", "order side: 'buy' or 'sell'")
	price := flag.Int("price", 100, "limit price tick")
	qtyStr := flag.String("qty", "10", "quantity, or comma-separated list (e.g. 10,20,50)")

	flag.Parse()

	if *id == 0 {
		fmt.Println("Error: -id is compulsory and must be nonzero.")
		flag.Usage()
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *serverAddr, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *serverAddr)

	go readReports(conn)

	side := domain.Buy
	if strings.EqualFold(*sideStr, "sell") {
		side = domain.Sell
	}

	switch strings.ToLower(*action) {
	case "place":
		for _, qty := range parseQuantities(*qtyStr) {
			m := fnet.NewOrderMessage{ID: *id, Price: int32(*price), Quantity: qty, Side: side}
			if _, err := conn.Write(m.Serialize()); err != nil {
				log.Printf("failed to place order (qty %d): %v", qty, err)
				continue
			}
			fmt.Printf("-> sent %s order: id=%d qty=%d price=%d\n", strings.ToUpper(*sideStr), *id, qty, *price)
			time.Sleep(5 * time.Millisecond)
		}
	case "cancel":
		m := fnet.CancelOrderMessage{ID: *id}
		if _, err := conn.Write(m.Serialize()); err != nil {
			log.Printf("failed to send cancel: %v", err)
		} else {
			fmt.Printf("-> sent cancel request for id=%d\n", *id)
		}
	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("\nlistening for reports... (press Ctrl+C to exit)")
	select {}
}

func parseQuantities(input string) []uint32 {
	var result []uint32
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if val, err := strconv.ParseUint(p, 10, 32); err == nil {
			result = append(result, uint32(val))
		} else {
			log.Printf("warning: invalid quantity %q, skipping", p)
		}
	}
	return result
}

func readReports(conn net.Conn) {
	for {
		buf := make([]byte, fnet.ReportLen)
		if _, err := io.ReadFull(conn, buf); err != nil {
			if err != io.EOF {
				log.Printf("connection lost: %v", err)
			}
			os.Exit(0)
		}

		r, err := fnet.ParseReport(buf)
		if err != nil {
			log.Printf("error parsing report: %v", err)
			continue
		}
		printReport(r)
	}
}

func printReport(r fnet.Report) {
	switch r.Kind {
	case fnet.ReportOrderAdded:
		fmt.Printf("\n[ADDED] id=%d price=%d qty=%d side=%s\n", r.ID, r.Price, r.Qty, r.Side)
	case fnet.ReportOrderCancelled:
		fmt.Printf("\n[CANCELLED] id=%d\n", r.ID)
	case fnet.ReportOrderRejected:
		fmt.Printf("\n[REJECTED] id=%d reason=%s\n", r.ID, r.Reason)
	case fnet.ReportTrade:
		fmt.Printf("\n[TRADE] aggressor=%d passive=%d price=%d qty=%d\n", r.AggressorID, r.PassiveID, r.Price, r.Qty)
	case fnet.ReportOrderBookUpdate:
		fmt.Printf("\n[BOOK] price=%d volume=%d side=%s\n", r.Price, r.Volume, r.Side)
	}
}
