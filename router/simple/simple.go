package simple

import (
	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/router"
)

type (
	Handler      func(*http.Request) *http.Response
	ErrorHandler func(*http.Request, error) *http.Response
)

type simpleRouter struct {
	handler    Handler
	errHandler ErrorHandler
}

// New returns a router calling the handler for every request. If errHandler is nil,
// errors are converted via http.ErrorResponse.
func New(handler Handler, errHandler ErrorHandler) router.Router {
	if errHandler == nil {
		errHandler = func(_ *http.Request, err error) *http.Response {
			return http.ErrorResponse(err)
		}
	}

	return simpleRouter{
		handler:    handler,
		errHandler: errHandler,
	}
}

func (s simpleRouter) OnRequest(request *http.Request) *http.Response {
	return s.handler(request)
}

func (s simpleRouter) OnError(request *http.Request, err error) *http.Response {
	return s.errHandler(request, err)
}
