package dump

import (
	"strconv"

	"github.com/indigo-web/rawhttp/http"
)

// Request renders the request head back into its wire form. The body isn't included,
// its length is given instead.
func Request(request *http.Request) string {
	var buff []byte

	buff = append(buff, request.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, request.Target.Path...)

	if len(request.Target.Query) > 0 {
		buff = append(buff, '?')
		buff = append(buff, request.Target.Query...)
	}

	buff = append(buff, ' ')
	buff = append(buff, request.Proto.String()...)
	buff = append(buff, '\r', '\n')

	for key, value := range request.Headers.Iter() {
		buff = header(buff, key, value)
	}

	buff = append(buff, '\r', '\n')
	buff = append(buff, "<"...)
	buff = strconv.AppendInt(buff, int64(len(request.Body)), 10)
	buff = append(buff, " bytes of body>"...)

	return string(buff)
}

func header(b []byte, key, value string) []byte {
	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)

	return append(b, '\r', '\n')
}
