package builtin

import (
	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/status"
	"github.com/rs/zerolog/log"
)

// recovered catches any panics of the handler and returns 500 Internal Server Error
// instead. Whatever the handler managed to build is discarded.
func recovered(request *http.Request, handler func(*http.Request) *http.Response) (response *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Interface("panic", r).
				Str("path", request.Target.Path).
				Msg("handler panicked")

			response = http.ErrorResponse(status.ErrInternalServerError)
		}
	}()

	return handler(request)
}
