package requestgen

import (
	"strconv"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/rawhttp/http/headers"
	"github.com/indigo-web/rawhttp/http/method"
)

// Headers generates n headers with unique names and random values, the last one
// being Host.
func Headers(n int) *headers.Headers {
	hdrs := headers.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Set("X-Random-"+strconv.Itoa(i)+"-"+uniuri.NewLen(8), uniuri.NewLen(32))
	}

	return hdrs.Set("Host", "localhost")
}

func HeadersBlock(hdrs *headers.Headers) (buff []byte) {
	for key, value := range hdrs.Iter() {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

// Generate renders a request. Content-Length is added automatically for methods
// carrying a body.
func Generate(m method.Method, path string, hdrs *headers.Headers, body []byte) (request []byte) {
	request = append(request, m.String()+" "+path+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	if m.HasBody() {
		request = append(request, "Content-Length: "+strconv.Itoa(len(body))+"\r\n"...)
	}

	request = append(request, '\r', '\n')

	return append(request, body...)
}
