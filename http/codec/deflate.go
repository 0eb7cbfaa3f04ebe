package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
)

func NewDeflate() Codec {
	return newBaseCodec(
		"deflate",
		func(dst io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(dst, flate.DefaultCompression)
		},
		func(src io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(src), nil
		},
	)
}
