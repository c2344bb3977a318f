package bdsync

import (
	"io"

	"github.com/pkg/errors"
)

// ReadFull reads exactly len(buf) bytes from r.
//
// Short reads are continued and EINTR/EAGAIN are retried. Any other error, a
// read that makes no progress, or EOF before buf is full is returned as an
// *IOError naming the device.
func ReadFull(r io.Reader, name string, buf []byte) error {
	return transfer("read", name, buf, r.Read)
}

// WriteFull writes all of buf to w, with the same retry rules as ReadFull.
func WriteFull(w io.Writer, name string, buf []byte) error {
	return transfer("write", name, buf, w.Write)
}

func transfer(op, name string, buf []byte, fn func([]byte) (int, error)) error {
	for len(buf) > 0 {
		n, err := fn(buf)
		if n > 0 {
			buf = buf[n:]
		}

		switch {
		case err == nil:
			if n <= 0 {
				return &IOError{Op: op, Device: name, Err: io.ErrNoProgress}
			}
		case isTransient(err):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 {
				return nil
			}
			return &IOError{Op: op, Device: name, Err: io.ErrUnexpectedEOF}
		default:
			return &IOError{Op: op, Device: name, Err: err}
		}
	}
	return nil
}
