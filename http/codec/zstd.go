package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func NewZSTD() Codec {
	return newBaseCodec(
		"zstd",
		func(dst io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(dst)
		},
		func(src io.Reader) (io.ReadCloser, error) {
			decoder, err := zstd.NewReader(src)
			if err != nil {
				return nil, err
			}

			return zstdReadCloser{decoder}, nil
		},
	)
}

// zstdReadCloser adapts the decoder, whose Close doesn't return an error.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}
