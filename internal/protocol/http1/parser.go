package http1

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/indigo-web/rawhttp/config"
	"github.com/indigo-web/rawhttp/http"
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/method"
	"github.com/indigo-web/rawhttp/http/proto"
	"github.com/indigo-web/rawhttp/http/status"
	"github.com/indigo-web/utils/uf"
)

// ErrConnectionClosed signals that the stream ended cleanly before a single byte of
// the next request was received. It isn't a parse failure: no response must be sent.
var ErrConnectionClosed = errors.New("connection closed")

type parserState uint8

const (
	eRequestLine parserState = iota
	eHeaders
	eBody
	eDone
)

var (
	crlf      = []byte("\r\n")
	delimiter = []byte(": ")
)

// Parser turns a byte stream into a sequence of requests. It's bound to a single
// connection and must not be shared.
type Parser struct {
	cfg    *config.Config
	reader *bufio.Reader
	state  parserState
	line   []byte
}

func NewParser(cfg *config.Config, r io.Reader) *Parser {
	return &Parser{
		cfg:    cfg,
		reader: bufio.NewReaderSize(retryReader{r}, cfg.NET.ReadBufferSize),
	}
}

// Parse reads the next request off the stream. Returned errors are either
// ErrConnectionClosed, status.HTTPError for protocol violations, or I/O failures.
func (p *Parser) Parse() (*http.Request, error) {
	request := http.NewRequest()
	p.state = eRequestLine

	for {
		switch p.state {
		case eRequestLine:
			line, err := p.readLine(true)
			if err != nil {
				return nil, err
			}

			if err = parseRequestLine(line, request); err != nil {
				return nil, err
			}

			p.state = eHeaders
		case eHeaders:
			line, err := p.readLine(false)
			if err != nil {
				return nil, err
			}

			if len(line) == 0 {
				p.state = eDone
				if request.Method.HasBody() {
					p.state = eBody
				}

				continue
			}

			if err = parseHeader(line, request.Headers); err != nil {
				return nil, err
			}
		case eBody:
			if err := p.readBody(request); err != nil {
				return nil, err
			}

			p.state = eDone
		case eDone:
			return request, nil
		}
	}
}

// readLine returns the next CRLF-terminated line without the terminator. A lone LF
// doesn't terminate a line. The returned slice is valid until the next call.
func (p *Parser) readLine(first bool) ([]byte, error) {
	p.line = p.line[:0]

	for {
		chunk, err := p.reader.ReadSlice('\n')
		p.line = append(p.line, chunk...)

		if len(p.line) > p.cfg.Headers.MaxLineSize {
			return nil, status.ErrTooLongLine
		}

		switch err {
		case nil:
			if bytes.HasSuffix(p.line, crlf) {
				return p.line[:len(p.line)-len(crlf)], nil
			}
		case bufio.ErrBufferFull:
		case io.EOF:
			if first && len(p.line) == 0 {
				return nil, ErrConnectionClosed
			}

			return nil, status.ErrMissingCRLF
		default:
			return nil, fmt.Errorf("read line: %w", err)
		}
	}
}

func parseRequestLine(line []byte, request *http.Request) error {
	tokens := bytes.Split(line, []byte(" "))

	if len(tokens[0]) == 0 {
		return status.ErrMissingMethod
	}

	request.Method = method.Parse(uf.B2S(tokens[0]))
	if request.Method == method.Unknown {
		return status.ErrUnsupportedMethod
	}

	if len(tokens) < 2 || len(tokens[1]) == 0 {
		return status.ErrMissingTarget
	}

	if err := parseTarget(tokens[1], &request.Target); err != nil {
		return err
	}

	if len(tokens) < 3 || len(tokens[2]) == 0 {
		return status.ErrMissingHTTPVersion
	}

	request.Proto = proto.FromBytes(tokens[2])
	if request.Proto == proto.Unknown {
		return status.ErrUnsupportedHTTPVersion
	}

	if len(tokens) > 3 {
		return status.UnexpectedToken(string(tokens[3]))
	}

	return nil
}

func parseTarget(raw []byte, target *http.Target) error {
	if raw[0] != '/' {
		return status.ErrBadTarget
	}

	if !utf8.Valid(raw) {
		return status.ErrNotUTF8
	}

	path, query, _ := bytes.Cut(raw, []byte("?"))
	target.Path = string(path)
	target.Query = string(query)

	return nil
}

func parseHeader(line []byte, hdrs *headers.Headers) error {
	key, value, found := bytes.Cut(line, delimiter)
	if !found {
		return status.ErrMalformedHeader
	}

	hdrs.Set(string(key), string(value))

	return nil
}

func (p *Parser) readBody(request *http.Request) error {
	value, found := request.Headers.Get(headers.ContentLength)
	if !found {
		return status.MissingHeader(headers.ContentLength)
	}

	length, err := strconv.ParseUint(value, 10, 63)
	if err != nil {
		return status.ErrMalformedHeader
	}

	var body bytes.Buffer
	body.Grow(int(min(length, uint64(p.cfg.NET.ReadBufferSize))))

	if _, err = io.CopyN(&body, p.reader, int64(length)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}

		return fmt.Errorf("read body: %w", err)
	}

	request.Body = body.Bytes()

	return nil
}
