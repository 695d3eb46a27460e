// Package gateway wraps a single-writer Engine in a TCP demo server: one
// accept loop, a worker pool reading client messages, and a single
// processor goroutine that is the only caller into the engine. Grounded
// on internal/net/server.go and internal/server/server.go.
package gateway

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fenrir-lob/fenrir/internal/engine"
	fnet "github.com/fenrir-lob/fenrir/internal/net"
	"github.com/fenrir-lob/fenrir/internal/worker"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const (
	maxRecvSize    = 4 * 1024
	defaultWorkers = 10
	connTimeout    = 5 * time.Second
)

// command links a parsed wire message to the connection that sent it.
type command struct {
	conn    net.Conn
	message fnet.Message
}

// Server is the TCP front-end for a single Engine.
type Server struct {
	address  string
	eng      *engine.Engine
	snk      *routingSink
	pool     worker.Pool
	cancel   context.CancelFunc
	commands chan command
}

// New builds a Server around a fresh Engine constructed with the given
// config, owning a routing sink that fans engine events back out to
// whichever connection(s) care about them.
func New(address string, cfg engine.Config) *Server {
	snk := newRoutingSink()
	return &Server{
		address:  address,
		eng:      engine.New(cfg, snk),
		snk:      snk,
		pool:     worker.New(defaultWorkers),
		commands: make(chan command, 1),
	}
}

// Run accepts connections and serves them until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	defer listener.Close()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.processCommands(t)
	})

	log.Info().Str("address", s.address).Msg("gateway listening")

	for {
		select {
		case <-ctx.Done():
			return t.Wait()
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return t.Wait()
				default:
					log.Error().Err(err).Msg("accept failed")
					continue
				}
			}
			correlation := uuid.New().String()
			log.Info().Str("remote", conn.RemoteAddr().String()).Str("conn", correlation).Msg("client connected")
			s.snk.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

// Shutdown stops the accept loop and connection workers.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

// processCommands is the single goroutine permitted to call into the
// engine — Engine is not safe for concurrent use, so every Submit/Cancel
// call in the process must come from here.
func (s *Server) processCommands(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case cmd := <-s.commands:
			s.snk.setCurrent(cmd.conn)
			switch m := cmd.message.(type) {
			case fnet.NewOrderMessage:
				s.eng.Submit(m.Order())
			case fnet.CancelOrderMessage:
				s.eng.Cancel(m.ID)
			default:
				log.Warn().Int("type", int(cmd.message.GetType())).Msg("unhandled message type")
			}
			s.snk.setCurrent(nil)
		}
	}
}

// handleConnection reads one message off conn, forwards it to the
// processor, and re-enqueues conn for its next message — mirroring the
// gateway's original one-read-per-task worker shape.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("worker task was not a net.Conn")
	}

	if err := conn.SetReadDeadline(time.Now().Add(connTimeout)); err != nil {
		log.Error().Err(err).Msg("failed setting read deadline")
		s.closeConn(conn)
		return nil
	}

	buf := make([]byte, maxRecvSize)
	select {
	case <-t.Dying():
		return nil
	default:
		n, err := conn.Read(buf)
		if err != nil {
			s.closeConn(conn)
			return nil
		}

		msg, err := fnet.ParseMessage(buf[:n])
		if err != nil {
			log.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("dropping unparseable message")
			s.pool.AddTask(conn)
			return nil
		}

		select {
		case s.commands <- command{conn: conn, message: msg}:
		case <-t.Dying():
			return nil
		}
		s.pool.AddTask(conn)
	}
	return nil
}

func (s *Server) closeConn(conn net.Conn) {
	s.snk.removeSession(conn)
	if err := conn.Close(); err != nil {
		log.Error().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("error closing connection")
	}
}
