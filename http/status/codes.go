package status

import "strconv"

type (
	Code   uint16
	Status string
)

// The fixed status table. Anything else is never produced by the server.
const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	Created             Code = 201 // RFC 9110, 15.3.2
	BadRequest          Code = 400 // RFC 9110, 15.5.1
	NotFound            Code = 404 // RFC 9110, 15.5.5
	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes lists every code of the table.
var KnownCodes = []Code{OK, Created, BadRequest, NotFound, InternalServerError}

// Text returns a reason phrase for the code. Unknown codes result in an empty string.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return ""
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}
