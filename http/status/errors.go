package status

import "fmt"

// HTTPError is an error which knows its own status code. Message is the human-readable
// reason, which is delivered to the client via the Cause header on client errors.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrMissingMethod          = NewError(BadRequest, "Request line did not have a method")
	ErrUnsupportedMethod      = NewError(BadRequest, "Unsupported Method")
	ErrMissingTarget          = NewError(BadRequest, "missing a target")
	ErrBadTarget              = NewError(BadRequest, "Malformed target: does not start with '/'")
	ErrMissingHTTPVersion     = NewError(BadRequest, "Missing HTTP version")
	ErrUnsupportedHTTPVersion = NewError(BadRequest, "Unsupported HTTP version")
	ErrMissingCRLF            = NewError(BadRequest, "A CRLF is missing")
	ErrMalformedHeader        = NewError(BadRequest, "Malformed header. Requires delimiting ': '")
	ErrNotUTF8                = NewError(BadRequest, "Invalid utf-8")
	ErrTooLongLine            = NewError(BadRequest, "request line is too long")

	ErrNotFound            = NewError(NotFound, "not found")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
)

// MissingHeader reports that a header required to process the request is absent.
// Errors for the same header compare equal, so errors.Is works as expected.
func MissingHeader(name string) error {
	return NewError(BadRequest, "Missing header: "+name)
}

// UnexpectedToken reports an extra token on the request line after the version.
func UnexpectedToken(token string) error {
	return NewError(BadRequest, fmt.Sprintf("expected \\r\\n, found %s", token))
}
