package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	PUT
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{GET, POST, PUT}

// Parse matches the token against the fixed methods table. The match is case-sensitive,
// as request methods are.
func Parse(str string) Method {
	for _, m := range List {
		if m.String() == str {
			return m
		}
	}

	return Unknown
}

// HasBody reports whether requests of the method are defined to carry a body, whose
// length is determined by the Content-Length header.
func (m Method) HasBody() bool {
	return m == POST
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	default:
		return "UNKNOWN"
	}
}
