package http

import (
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/method"
	"github.com/indigo-web/rawhttp/http/proto"
)

// Target is the path-and-query component of the request line.
type Target struct {
	// Path is guaranteed to be non-empty and to begin with a slash.
	Path string
	// Query is everything after the first question mark, kept raw. It's reserved and
	// isn't parsed any further.
	Query string
}

// Request is constructed once per parse, consumed once by the handler and then discarded.
type Request struct {
	Method  method.Method
	Target  Target
	Proto   proto.Proto
	Headers *headers.Headers
	// Body is filled only for methods carrying a body, its length is determined
	// by the Content-Length header.
	Body []byte
}

// headersPrealloc covers the headers sent by common clients without growing.
const headersPrealloc = 8

func NewRequest() *Request {
	return &Request{
		Headers: headers.NewPrealloc(headersPrealloc),
	}
}

// WantsClose indicates, whether the client asked to close the connection after the
// response is sent.
func (r *Request) WantsClose() bool {
	value, found := r.Headers.Get(headers.Connection)
	return found && headers.ContainsToken(value, "close")
}
