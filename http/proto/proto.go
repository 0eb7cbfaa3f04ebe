package proto

import "github.com/indigo-web/utils/uf"

// Proto is a protocol version token. HTTP/2.0 is recognised on the request line, however
// nothing but its token is implemented.
type Proto uint8

const (
	Unknown Proto = iota
	HTTP11
	HTTP2
)

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

var majorMinorVersionLUT = [10][10]Proto{
	1: {1: HTTP11},
	2: {0: HTTP2},
}

// FromBytes matches the raw version token, e.g. HTTP/1.1. Anything not in the table,
// including HTTP/1.0, results in Unknown.
func FromBytes(raw []byte) Proto {
	if len(raw) != protoTokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme ||
		raw[majorVersionOffset+1] != '.' {
		return Unknown
	}

	return Parse(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

func Parse(major, minor uint8) Proto {
	if major > 9 || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}

func (p Proto) String() string {
	switch p {
	case HTTP11:
		return "HTTP/1.1"
	case HTTP2:
		return "HTTP/2.0"
	default:
		return ""
	}
}
