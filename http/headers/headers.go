package headers

import (
	"strings"

	"github.com/indigo-web/rawhttp/kv"
	"github.com/indigo-web/utils/strcomp"
)

// Headers is a header map of a request or a response. Keys are unique, compared
// case-insensitively and stored as given; duplicates overwrite.
type Headers = kv.Storage

func New() *Headers {
	return kv.New()
}

// NewPrealloc returns a header map with room for n entries.
func NewPrealloc(n int) *Headers {
	return kv.NewPrealloc(n)
}

// Well-known header names the server consumes or produces.
const (
	AcceptEncoding  = "Accept-Encoding"
	Cause           = "Cause"
	Connection      = "Connection"
	ContentEncoding = "Content-Encoding"
	ContentLength   = "Content-Length"
	ContentType     = "Content-Type"
	UserAgent       = "User-Agent"
)

// ContainsToken reports whether the comma-separated header value lists the token. Tokens
// are compared case-insensitively.
func ContainsToken(value, token string) bool {
	for len(value) > 0 {
		var element string
		element, value, _ = strings.Cut(value, ",")
		if strcomp.EqualFold(strings.TrimSpace(element), token) {
			return true
		}
	}

	return false
}
