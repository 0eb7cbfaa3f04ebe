// Package builtin implements the fixed routing table of the server: echo, user-agent
// and the file store endpoints.
package builtin

import (
	"strings"

	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/codec"
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/method"
	"github.com/indigo-web/rawhttp/http/status"
	"github.com/indigo-web/rawhttp/router"
	"github.com/indigo-web/rawhttp/storage"
)

var _ router.Router = &Router{}

// Router dispatches requests by method and the first path segment.
type Router struct {
	codecs codec.Registry
	store  storage.Store
}

func New(codecs codec.Registry, store storage.Store) *Router {
	return &Router{
		codecs: codecs,
		store:  store,
	}
}

func (r *Router) OnRequest(request *http.Request) *http.Response {
	return recovered(request, r.dispatch)
}

func (r *Router) OnError(_ *http.Request, err error) *http.Response {
	return http.ErrorResponse(err)
}

func (r *Router) dispatch(request *http.Request) *http.Response {
	c := r.negotiate(request)
	segment, rest, hasRest := strings.Cut(strings.TrimPrefix(request.Target.Path, "/"), "/")

	switch request.Method {
	case method.GET:
		switch {
		case len(segment) == 0 && !hasRest:
			return http.NewResponse()
		case segment == "echo" && hasRest:
			return r.echo(rest, c)
		case segment == "user-agent" && !hasRest:
			return r.userAgent(request, c)
		case segment == "files" && hasRest:
			return r.readFile(rest, c)
		}
	case method.POST:
		if segment == "files" && hasRest {
			return r.writeFile(rest, request.Body)
		}
	}

	return http.ErrorResponse(status.ErrNotFound)
}

// negotiate consumes the Accept-Encoding header, returning the codec to encode the
// response body with. Nil means no coding.
func (r *Router) negotiate(request *http.Request) codec.Codec {
	value, found := request.Headers.Delete(headers.AcceptEncoding)
	if !found {
		return nil
	}

	return r.codecs.Negotiate(value)
}

func (r *Router) echo(rest string, c codec.Codec) *http.Response {
	return http.NewResponse().Plain([]byte(rest), c)
}

func (r *Router) userAgent(request *http.Request, c codec.Codec) *http.Response {
	value, found := request.Headers.Get(headers.UserAgent)
	if !found {
		return http.ErrorResponse(status.MissingHeader(headers.UserAgent))
	}

	return http.NewResponse().Plain([]byte(value), c)
}

func (r *Router) readFile(name string, c codec.Codec) *http.Response {
	data, err := r.store.Read(name)
	if err != nil {
		return http.ErrorResponse(err)
	}

	return http.NewResponse().OctetStream(data, c)
}

func (r *Router) writeFile(name string, data []byte) *http.Response {
	if err := r.store.Write(name, data); err != nil {
		return http.ErrorResponse(err)
	}

	return http.NewResponse().Code(status.Created)
}
