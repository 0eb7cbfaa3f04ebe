package http1

import (
	"errors"
	"io"
	"syscall"
)

// retryReader transparently retries reads interrupted by a signal.
type retryReader struct {
	r io.Reader
}

func (r retryReader) Read(b []byte) (n int, err error) {
	for {
		n, err = r.r.Read(b)
		if n == 0 && errors.Is(err, syscall.EINTR) {
			continue
		}

		return n, err
	}
}
