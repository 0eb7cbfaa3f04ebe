package http1

import (
	"bufio"
	"io"
	"strconv"

	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/status"
)

// Serializer writes responses onto the wire. It's bound to a single connection and must
// not be shared.
type Serializer struct {
	writer *bufio.Writer
}

func NewSerializer(w io.Writer, bufferSize int) *Serializer {
	return &Serializer{
		writer: bufio.NewWriterSize(w, bufferSize),
	}
}

// Write serializes the response in a single pass and flushes it. Body-related headers
// are derived from the body data, so Content-Length always matches the encoded body.
func (s *Serializer) Write(response *http.Response) error {
	protocol, code, hdrs, body := response.Expose()

	s.writer.WriteString(protocol.String())
	s.writer.WriteByte(' ')
	s.writer.WriteString(status.StringCode(code))
	s.writer.WriteByte(' ')
	s.writer.WriteString(string(status.Text(code)))
	s.crlf()

	for key, value := range hdrs.Iter() {
		s.header(key, value)
	}

	if body != nil {
		s.header(headers.ContentType, string(body.ContentType))
		s.header(headers.ContentLength, strconv.Itoa(len(body.Data)))
		if len(body.Encoding) > 0 {
			s.header(headers.ContentEncoding, body.Encoding)
		}
	}

	s.crlf()

	if body != nil {
		s.writer.Write(body.Data)
	}

	// bufio.Writer keeps the first error it encountered, so it is reported here.
	return s.writer.Flush()
}

func (s *Serializer) header(key, value string) {
	s.writer.WriteString(key)
	s.writer.WriteString(": ")
	s.writer.WriteString(value)
	s.crlf()
}

func (s *Serializer) crlf() {
	s.writer.Write(crlf)
}
