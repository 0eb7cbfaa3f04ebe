package http

import (
	"github.com/indigo-web/rawhttp/http/codec"
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/mime"
	"github.com/indigo-web/rawhttp/http/proto"
	"github.com/indigo-web/rawhttp/http/status"
)

// BodyData is the body of a response together with metadata required to produce
// body-related headers.
type BodyData struct {
	ContentType mime.MIME
	// Encoding is a token of the applied coding, empty if the body is sent as is.
	Encoding string
	// Data is already encoded, so its length is the value of Content-Length.
	Data []byte
}

// Response is built by a handler (or out of an error) and consumed exactly once by the
// serializer.
type Response struct {
	proto   proto.Proto
	code    status.Code
	headers *headers.Headers
	body    *BodyData
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK,
// HTTP/1.1 protocol and no body.
func NewResponse() *Response {
	return &Response{
		proto:   proto.HTTP11,
		code:    status.OK,
		headers: headers.New(),
	}
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Header sets a header, overriding the previous value if any. Body-related headers
// must not be set this way, as they are derived from the body itself.
func (r *Response) Header(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// Body sets the body, encoding it with the codec first if it isn't nil. In case encoding
// fails, the response turns into the corresponding error response.
func (r *Response) Body(contentType mime.MIME, data []byte, c codec.Codec) *Response {
	if c == nil {
		r.body = &BodyData{
			ContentType: contentType,
			Data:        data,
		}

		return r
	}

	encoded, err := codec.EncodeBytes(c, data)
	if err != nil {
		return r.Error(err)
	}

	r.body = &BodyData{
		ContentType: contentType,
		Encoding:    c.Token(),
		Data:        encoded,
	}

	return r
}

// Plain sets a text/plain body.
func (r *Response) Plain(data []byte, c codec.Codec) *Response {
	return r.Body(mime.Plain, data, c)
}

// OctetStream sets an application/octet-stream body.
func (r *Response) OctetStream(data []byte, c codec.Codec) *Response {
	return r.Body(mime.OctetStream, data, c)
}

// Close marks the response as the last one on the connection.
func (r *Response) Close() *Response {
	return r.Header(headers.Connection, "close")
}

// Closing indicates, whether the connection must be closed after the response is sent.
func (r *Response) Closing() bool {
	value, found := r.headers.Get(headers.Connection)
	return found && headers.ContainsToken(value, "close")
}

// Expose gives access to the response fields. It's used by the serializer.
func (r *Response) Expose() (proto.Proto, status.Code, *headers.Headers, *BodyData) {
	return r.proto, r.code, r.headers, r.body
}

// GetCode returns the status code of the response.
func (r *Response) GetCode() status.Code {
	return r.code
}

// GetHeaders returns the dynamic header map, which excludes body-derived headers.
func (r *Response) GetHeaders() *headers.Headers {
	return r.headers
}

// GetBody returns the body data, nil if there's none.
func (r *Response) GetBody() *BodyData {
	return r.body
}
