package tcp

import (
	"io"
	"net"
	"testing"

	"github.com/indigo-web/rawhttp/internal/pool"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, onConn onConnection) (*Server, *pool.Pool, chan error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	p := pool.New(2)
	server := NewServer(listener, p, onConn)
	stopCh := make(chan error, 1)
	go func() {
		stopCh <- server.Start()
	}()

	return server, p, stopCh
}

func TestTCP(t *testing.T) {
	t.Run("stop", func(t *testing.T) {
		server, p, stopCh := startServer(t, func(conn net.Conn) {
			_ = conn.Close()
		})
		require.NoError(t, server.Stop())
		require.ErrorIs(t, <-stopCh, ErrShutdown)
		p.Close()
		p.Wait()
	})

	t.Run("connections are served by the pool", func(t *testing.T) {
		server, p, stopCh := startServer(t, func(conn net.Conn) {
			defer conn.Close()
			_, _ = io.Copy(conn, conn)
		})

		for i := 0; i < 5; i++ {
			conn, err := net.Dial("tcp", server.sock.Addr().String())
			require.NoError(t, err)
			_, err = conn.Write([]byte("ping"))
			require.NoError(t, err)

			buff := make([]byte, 4)
			_, err = io.ReadFull(conn, buff)
			require.NoError(t, err)
			require.Equal(t, "ping", string(buff))
			require.NoError(t, conn.Close())
		}

		require.NoError(t, server.Stop())
		require.ErrorIs(t, <-stopCh, ErrShutdown)
		p.Close()
		p.Wait()
	})

	t.Run("stop closes open connections", func(t *testing.T) {
		accepted := make(chan struct{})
		server, p, stopCh := startServer(t, func(conn net.Conn) {
			close(accepted)
			_, _ = io.Copy(io.Discard, conn)
		})

		conn, err := net.Dial("tcp", server.sock.Addr().String())
		require.NoError(t, err)
		defer conn.Close()
		<-accepted

		require.NoError(t, server.Stop())
		require.ErrorIs(t, <-stopCh, ErrShutdown)

		// the worker is released only if the connection was closed on our behalf
		p.Close()
		p.Wait()
	})
}

// gatedListener hands out a single connection once released, ignoring Close.
type gatedListener struct {
	release chan struct{}
	conn    net.Conn
}

func (g *gatedListener) Accept() (net.Conn, error) {
	<-g.release
	if g.conn == nil {
		return nil, net.ErrClosed
	}

	conn := g.conn
	g.conn = nil
	return conn, nil
}

func (g *gatedListener) Close() error   { return nil }
func (g *gatedListener) Addr() net.Addr { return &net.TCPAddr{} }

func TestStopRace(t *testing.T) {
	client, serverConn := net.Pipe()
	listener := &gatedListener{release: make(chan struct{}), conn: serverConn}

	p := pool.New(1)
	defer func() {
		p.Close()
		p.Wait()
	}()

	served := make(chan struct{}, 1)
	server := NewServer(listener, p, func(conn net.Conn) {
		served <- struct{}{}
	})

	stopCh := make(chan error, 1)
	go func() {
		stopCh <- server.Start()
	}()

	// the connection is accepted only after Stop has already closed the tracked ones
	require.NoError(t, server.Stop())
	close(listener.release)
	require.ErrorIs(t, <-stopCh, ErrShutdown)

	_, err := client.Read(make([]byte, 1))
	require.Error(t, err)
	require.Empty(t, served)
	require.Empty(t, server.conns)
}
