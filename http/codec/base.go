package codec

import (
	"bytes"
	"io"
)

var _ Codec = baseCodec{}

type (
	newEncoder = func(dst io.Writer) (io.WriteCloser, error)
	newDecoder = func(src io.Reader) (io.ReadCloser, error)
)

type baseCodec struct {
	token  string
	encode newEncoder
	decode newDecoder
}

func newBaseCodec(token string, encode newEncoder, decode newDecoder) baseCodec {
	return baseCodec{
		token:  token,
		encode: encode,
		decode: decode,
	}
}

func (b baseCodec) Token() string {
	return b.token
}

func (b baseCodec) Encode(src io.Reader) ([]byte, error) {
	var buff bytes.Buffer

	encoder, err := b.encode(&buff)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(encoder, src); err != nil {
		_ = encoder.Close()
		return nil, err
	}

	if err = encoder.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (b baseCodec) Decode(src io.Reader) ([]byte, error) {
	decoder, err := b.decode(src)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(decoder)
	if cerr := decoder.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return data, err
}
