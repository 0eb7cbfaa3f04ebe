package http

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/status"
)

// Error turns the response into the error response, discarding its headers and body.
// See ErrorResponse for the mapping.
func (r *Response) Error(err error) *Response {
	r.headers.Clear()
	r.body = nil
	r.code = Classify(err)

	if r.code == status.BadRequest {
		var httpErr status.HTTPError
		if errors.As(err, &httpErr) {
			r.headers.Set(headers.Cause, httpErr.Message)
		}
	}

	return r
}

// ErrorResponse maps any error to a response:
//   - status.HTTPError results in its own code, with the Cause header carrying its
//     message on 400 Bad Request;
//   - a missing file, a permission denial or a directory in place of a file
//     results in 404 Not Found;
//   - anything else, including unconfigured storage, is 500 Internal Server Error.
func ErrorResponse(err error) *Response {
	return NewResponse().Error(err)
}

// Classify returns the status code the error is mapped to.
func Classify(err error) status.Code {
	var httpErr status.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, syscall.EISDIR):
		return status.NotFound
	default:
		return status.InternalServerError
	}
}
