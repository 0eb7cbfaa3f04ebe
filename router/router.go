package router

import (
	"github.com/indigo-web/rawhttp/http"
)

// Router is the application layer of the server. OnError is called for requests that
// could not be parsed, so the request passed to it carries no data.
type Router interface {
	OnRequest(request *http.Request) *http.Response
	OnError(request *http.Request, err error) *http.Response
}
