package codec

import (
	"bytes"
	"io"
)

// Codec wraps and unwraps byte streams into a compression format. Implementations are
// stateless, so a single Codec may be shared among all the workers.
type Codec interface {
	// Token returns a coding token associated with the codec itself.
	Token() string
	// Encode reads the source till EOF and returns its compressed copy.
	Encode(src io.Reader) ([]byte, error)
	// Decode reads the compressed source till EOF and returns the original data.
	Decode(src io.Reader) ([]byte, error)
}

// EncodeBytes is a shorthand for encoding in-memory data.
func EncodeBytes(c Codec, data []byte) ([]byte, error) {
	return c.Encode(bytes.NewReader(data))
}

// DecodeBytes is a shorthand for decoding in-memory data.
func DecodeBytes(c Codec, data []byte) ([]byte, error) {
	return c.Decode(bytes.NewReader(data))
}
