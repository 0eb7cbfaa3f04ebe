package http

import (
	"errors"
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/rawhttp/config"
	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/status"
	"github.com/indigo-web/rawhttp/internal/dump"
	"github.com/indigo-web/rawhttp/internal/protocol/http1"
	"github.com/indigo-web/rawhttp/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server serves connections one request at a time, keeping them alive until either side
// asks to close.
type Server struct {
	cfg    *config.Config
	router router.Router
}

func NewServer(cfg *config.Config, r router.Router) *Server {
	return &Server{
		cfg:    cfg,
		router: r,
	}
}

// Run serves the connection until it's closed, and closes it afterwards.
func (s *Server) Run(conn net.Conn) {
	logger := log.With().
		Str("conn", uniuri.NewLen(8)).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	logger.Debug().Msg("connection accepted")

	defer func() {
		_ = conn.Close()
		logger.Debug().Msg("connection closed")
	}()

	parser := http1.NewParser(s.cfg, conn)
	serializer := http1.NewSerializer(conn, s.cfg.NET.WriteBufferSize)

	for s.HandleRequest(parser, serializer, logger) {
	}
}

// HandleRequest parses a single request and sends the response to it. Returned false
// means the connection must not be served anymore.
func (s *Server) HandleRequest(parser *http1.Parser, serializer *http1.Serializer, logger zerolog.Logger) bool {
	request, err := parser.Parse()
	switch {
	case err == nil:
	case errors.Is(err, http1.ErrConnectionClosed):
		return false
	default:
		logger.Debug().Err(err).Msg("failed to parse request")
		// the stream position is unknown after a failure, so nothing else can be read
		response := s.route(logger, func() *http.Response {
			return s.router.OnError(http.NewRequest(), err)
		}).Close()
		s.send(serializer, response, logger)

		return false
	}

	if e := logger.Trace(); e.Enabled() {
		e.Str("request", dump.Request(request)).Msg("request received")
	}

	response := s.route(logger, func() *http.Response {
		return s.router.OnRequest(request)
	})
	if request.WantsClose() {
		response.Close()
	}

	if !s.send(serializer, response, logger) {
		return false
	}

	return !response.Closing()
}

func (s *Server) send(serializer *http1.Serializer, response *http.Response, logger zerolog.Logger) bool {
	if err := serializer.Write(response); err != nil {
		logger.Warn().Err(err).Msg("failed to send response")
		return false
	}

	return true
}

// route calls the router. A panicking router results in 500 Internal Server Error, after
// which the connection is closed.
func (s *Server) route(logger zerolog.Logger, call func() *http.Response) (response *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("router panicked")
			response = http.ErrorResponse(status.ErrInternalServerError).Close()
		}
	}()

	return notNil(call())
}

func notNil(response *http.Response) *http.Response {
	if response != nil {
		return response
	}

	return http.ErrorResponse(status.ErrInternalServerError)
}
