package http

import (
	"bufio"
	"bytes"
	"io"
	"net"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/indigo-web/rawhttp/config"
	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/codec"
	"github.com/indigo-web/rawhttp/router/builtin"
	"github.com/indigo-web/rawhttp/router/simple"
	"github.com/indigo-web/rawhttp/storage"
	"github.com/stretchr/testify/require"
)

// bufConn is a connection reading from a fixed input and recording everything written.
type bufConn struct {
	in     io.Reader
	out    bytes.Buffer
	closed bool
}

func newBufConn(input string) *bufConn {
	return &bufConn{in: strings.NewReader(input)}
}

func (b *bufConn) Read(p []byte) (int, error) { return b.in.Read(p) }
func (b *bufConn) Write(p []byte) (int, error) { return b.out.Write(p) }
func (b *bufConn) Close() error { b.closed = true; return nil }
func (b *bufConn) LocalAddr() net.Addr { return dummyAddr{} }
func (b *bufConn) RemoteAddr() net.Addr { return dummyAddr{} }
func (b *bufConn) SetDeadline(time.Time) error { return nil }
func (b *bufConn) SetReadDeadline(time.Time) error { return nil }
func (b *bufConn) SetWriteDeadline(time.Time) error { return nil }

type dummyAddr struct{}

func (dummyAddr) Network() string { return "dummy" }
func (dummyAddr) String() string  { return "dummy" }

func newServer(t *testing.T) *Server {
	cfg := config.Default()
	return NewServer(cfg, builtin.New(codec.Default(), storage.New(t.TempDir())))
}

func readResponses(t *testing.T, raw []byte, n int) []*stdhttp.Response {
	reader := bufio.NewReader(bytes.NewReader(raw))
	responses := make([]*stdhttp.Response, n)

	for i := range responses {
		resp, err := stdhttp.ReadResponse(reader, nil)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body = io.NopCloser(bytes.NewReader(body))
		responses[i] = resp
	}

	return responses
}

func readBody(t *testing.T, resp *stdhttp.Response) string {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServer(t *testing.T) {
	t.Run("persistent connection", func(t *testing.T) {
		conn := newBufConn(
			"GET /echo/first HTTP/1.1\r\n\r\n" +
				"GET /user-agent HTTP/1.1\r\nUser-Agent: xyz/1.0\r\n\r\n" +
				"GET /echo/third HTTP/1.1\r\n\r\n",
		)
		newServer(t).Run(conn)
		require.True(t, conn.closed)

		responses := readResponses(t, conn.out.Bytes(), 3)
		for i, want := range []string{"first", "xyz/1.0", "third"} {
			require.Equal(t, 200, responses[i].StatusCode)
			require.False(t, responses[i].Close)
			require.Equal(t, want, readBody(t, responses[i]))
		}
	})

	t.Run("files round trip", func(t *testing.T) {
		conn := newBufConn(
			"POST /files/a/b.txt HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello" +
				"GET /files/a/b.txt HTTP/1.1\r\nConnection: close\r\n\r\n",
		)
		newServer(t).Run(conn)

		raw := conn.out.String()
		created := "HTTP/1.1 201 Created\r\n\r\n"
		require.True(t, strings.HasPrefix(raw, created))

		responses := readResponses(t, []byte(raw[len(created):]), 1)
		require.Equal(t, 200, responses[0].StatusCode)
		require.Equal(t, "application/octet-stream", responses[0].Header.Get("Content-Type"))
		require.Equal(t, "hello", readBody(t, responses[0]))
		require.True(t, responses[0].Close)
	})

	t.Run("connection close stops the loop", func(t *testing.T) {
		conn := newBufConn(
			"GET /echo/foo HTTP/1.1\r\nConnection: Close\r\n\r\n" +
				"GET /echo/never HTTP/1.1\r\n\r\n",
		)
		newServer(t).Run(conn)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.True(t, responses[0].Close)
		require.Equal(t, "foo", readBody(t, responses[0]))
		require.NotContains(t, conn.out.String(), "never")
	})

	t.Run("parse error responds and closes", func(t *testing.T) {
		conn := newBufConn(
			"GET / HTTP/1.1\r\nbroken header\r\n\r\n" +
				"GET /echo/never HTTP/1.1\r\n\r\n",
		)
		newServer(t).Run(conn)
		require.True(t, conn.closed)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.Equal(t, 400, responses[0].StatusCode)
		require.Contains(t, responses[0].Header.Get("Cause"), "': '")
		require.True(t, responses[0].Close)
		require.NotContains(t, conn.out.String(), "never")
	})

	t.Run("bad target", func(t *testing.T) {
		conn := newBufConn("GET index.html HTTP/1.1\r\n\r\n")
		newServer(t).Run(conn)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.Equal(t, 400, responses[0].StatusCode)
		require.Equal(t, "Malformed target: does not start with '/'", responses[0].Header.Get("Cause"))
	})

	t.Run("clean close sends nothing", func(t *testing.T) {
		conn := newBufConn("")
		newServer(t).Run(conn)
		require.True(t, conn.closed)
		require.Zero(t, conn.out.Len())
	})

	t.Run("gzip negotiation", func(t *testing.T) {
		conn := newBufConn("GET /echo/foo HTTP/1.1\r\nAccept-Encoding: gzip\r\n\r\n")
		newServer(t).Run(conn)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.Equal(t, "gzip", responses[0].Header.Get("Content-Encoding"))
		decoded, err := codec.DecodeBytes(codec.NewGZIP(), []byte(readBody(t, responses[0])))
		require.NoError(t, err)
		require.Equal(t, "foo", string(decoded))
	})

	t.Run("nil response", func(t *testing.T) {
		cfg := config.Default()
		server := NewServer(cfg, simple.New(func(*http.Request) *http.Response {
			return nil
		}, nil))
		conn := newBufConn("GET / HTTP/1.1\r\nConnection: close\r\n\r\n")
		server.Run(conn)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.Equal(t, 500, responses[0].StatusCode)
	})

	t.Run("panicking router", func(t *testing.T) {
		cfg := config.Default()
		server := NewServer(cfg, simple.New(func(*http.Request) *http.Response {
			panic("handler bug")
		}, nil))
		conn := newBufConn(
			"GET /echo/a HTTP/1.1\r\n\r\n" +
				"GET /echo/b HTTP/1.1\r\n\r\n",
		)
		require.NotPanics(t, func() {
			server.Run(conn)
		})
		require.True(t, conn.closed)

		require.Equal(t,
			"HTTP/1.1 500 Internal Server Error\r\nConnection: close\r\n\r\n",
			conn.out.String(),
		)
	})

	t.Run("panicking error handler", func(t *testing.T) {
		cfg := config.Default()
		server := NewServer(cfg, simple.New(func(*http.Request) *http.Response {
			return http.NewResponse()
		}, func(*http.Request, error) *http.Response {
			panic("error handler bug")
		}))
		conn := newBufConn("GET index.html HTTP/1.1\r\n\r\n")
		require.NotPanics(t, func() {
			server.Run(conn)
		})
		require.True(t, conn.closed)

		responses := readResponses(t, conn.out.Bytes(), 1)
		require.Equal(t, 500, responses[0].StatusCode)
		require.True(t, responses[0].Close)
	})

	t.Run("over a real pipe", func(t *testing.T) {
		client, serverConn := net.Pipe()
		done := make(chan struct{})
		go func() {
			newServer(t).Run(serverConn)
			close(done)
		}()

		reader := bufio.NewReader(client)
		for _, word := range []string{"a", "b", "c"} {
			_, err := client.Write([]byte("GET /echo/" + word + " HTTP/1.1\r\n\r\n"))
			require.NoError(t, err)

			resp, err := stdhttp.ReadResponse(reader, nil)
			require.NoError(t, err)
			require.Equal(t, word, readBody(t, resp))
		}

		require.NoError(t, client.Close())
		<-done
	})

	t.Run("send failure ends the loop", func(t *testing.T) {
		client, serverConn := net.Pipe()
		done := make(chan struct{})
		go func() {
			newServer(t).Run(serverConn)
			close(done)
		}()

		// the response can't be delivered, as the client is gone right after the request
		go func() {
			_, _ = client.Write([]byte("GET /echo/a HTTP/1.1\r\n\r\n"))
			_ = client.Close()
		}()

		<-done
	})
}
