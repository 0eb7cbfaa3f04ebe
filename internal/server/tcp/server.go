package tcp

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/rawhttp/internal/pool"
	"github.com/rs/zerolog/log"
)

// ErrShutdown is returned by Start after Stop was called.
var ErrShutdown = errors.New("server is shut down")

type onConnection func(net.Conn)

// Server accepts connections and hands each of them to the pool as a separate job. The
// connection stays pinned to the worker which took the job until onConn returns.
type Server struct {
	sock     net.Listener
	pool     *pool.Pool
	onConn   onConnection
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, p *pool.Pool, onConn onConnection) *Server {
	return &Server{
		sock:   sock,
		pool:   p,
		onConn: onConn,
		conns:  map[net.Conn]struct{}{},
	}
}

// Start runs the accept loop. It returns ErrShutdown after Stop, or an error if the
// listener failed otherwise.
func (s *Server) Start() error {
	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return ErrShutdown
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			log.Error().Err(err).Msg("failed to accept connection")
			continue
		}

		if !s.track(conn) {
			_ = conn.Close()
			return ErrShutdown
		}

		if err = s.pool.Execute(pool.JobFunc(func() {
			s.connHandler(conn)
		})); err != nil {
			s.untrack(conn)
			_ = conn.Close()

			if s.shutdown.Load() {
				return ErrShutdown
			}

			return err
		}

		log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("connection dispatched")
	}
}

// Stop shuts the listener and ALL the connections down.
func (s *Server) Stop() error {
	s.shutdown.Store(true)
	err := s.sock.Close()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

func (s *Server) connHandler(conn net.Conn) {
	defer s.untrack(conn)
	s.onConn(conn)
}

// track registers the connection, so Stop could close it. It fails if Stop has already
// closed the registered connections.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown.Load() {
		return false
	}

	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
