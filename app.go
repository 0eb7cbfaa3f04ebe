package rawhttp

import (
	"fmt"
	"net"
	"sync"

	"github.com/indigo-web/rawhttp/config"
	"github.com/indigo-web/rawhttp/http/codec"
	"github.com/indigo-web/rawhttp/internal/pool"
	httpserver "github.com/indigo-web/rawhttp/internal/server/http"
	"github.com/indigo-web/rawhttp/internal/server/tcp"
	"github.com/indigo-web/rawhttp/router"
	"github.com/indigo-web/rawhttp/router/builtin"
	"github.com/indigo-web/rawhttp/storage"
	"github.com/rs/zerolog/log"
)

// ErrShutdown is returned by Serve after the App was stopped.
var ErrShutdown = tcp.ErrShutdown

type hooks struct {
	OnStart, OnStop func()
}

// App binds the listener, spawns the worker pool and serves accepted connections
// on it.
type App struct {
	cfg   *config.Config
	hooks hooks

	mu      sync.Mutex
	server  *tcp.Server
	addr    net.Addr
	stopped bool
}

// New returns a new App instance. Nil config is replaced with defaults.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg: config.Fill(cfg),
	}
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and the
// pool is ready to execute jobs.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the listener is closed and all
// the workers have exited.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application and blocks until it's stopped. If nil is passed
// instead of a router, the built-in one is used.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		var err error
		if r, err = a.builtinRouter(); err != nil {
			return err
		}
	}

	sock, err := net.Listen("tcp", a.cfg.NET.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	workers := pool.New(a.cfg.Pool.MinWorkers)
	server := tcp.NewServer(sock, workers, httpserver.NewServer(a.cfg, r).Run)

	a.mu.Lock()
	a.server = server
	a.addr = sock.Addr()
	if a.stopped {
		// Stop came before the server existed, so Start returns right away
		_ = server.Stop()
	}
	a.mu.Unlock()

	log.Info().
		Str("addr", sock.Addr().String()).
		Int("workers", workers.Size()).
		Msg("listening")

	callIfNotNil(a.hooks.OnStart)
	err = server.Start()
	workers.Close()
	workers.Wait()
	callIfNotNil(a.hooks.OnStop)

	return err
}

func (a *App) builtinRouter() (router.Router, error) {
	codecs, err := codec.FromTokens(a.cfg.Encodings)
	if err != nil {
		return nil, fmt.Errorf("encodings: %w", err)
	}

	if len(a.cfg.Files.Directory) == 0 {
		log.Warn().Msg("files directory is not configured, /files will respond 500")
	}

	return builtin.New(codecs, storage.New(a.cfg.Files.Directory)), nil
}

// Addr returns the address the listener is bound to, nil if it isn't yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.addr
}

// Stop closes the listener and all the connections. Serve returns ErrShutdown once the
// workers have exited. If Serve wasn't started yet, it returns ErrShutdown immediately
// after binding.
func (a *App) Stop() error {
	a.mu.Lock()
	a.stopped = true
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return nil
	}

	return server.Stop()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
