package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func NewGZIP() Codec {
	return newBaseCodec(
		"gzip",
		func(dst io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(dst, gzip.DefaultCompression)
		},
		func(src io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(src)
		},
	)
}
