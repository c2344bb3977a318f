package bdsync

import (
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

type write struct {
	off int64
	n   int
}

// memDevice is an in-memory block device with optional short transfers and
// injected errors.
type memDevice struct {
	data []byte
	pos  int64

	// chunk caps the bytes moved per Read/Write call, 0 means unlimited.
	chunk int
	// readFaults and writeFaults are returned, one per call, before any data moves.
	readFaults  []error
	writeFaults []error
	seekErr     error

	writes []write
}

func newMemDevice(data []byte) *memDevice {
	return &memDevice{data: append([]byte(nil), data...)}
}

func (d *memDevice) limit(p []byte) []byte {
	if d.chunk > 0 && len(p) > d.chunk {
		return p[:d.chunk]
	}
	return p
}

func (d *memDevice) Read(p []byte) (int, error) {
	if len(d.readFaults) > 0 {
		err := d.readFaults[0]
		d.readFaults = d.readFaults[1:]
		return 0, err
	}
	if d.pos >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(d.limit(p), d.data[d.pos:])
	d.pos += int64(n)
	return n, nil
}

func (d *memDevice) Write(p []byte) (int, error) {
	if len(d.writeFaults) > 0 {
		err := d.writeFaults[0]
		d.writeFaults = d.writeFaults[1:]
		return 0, err
	}
	if d.pos >= int64(len(d.data)) {
		return 0, &os.PathError{Op: "write", Path: "mem", Err: syscall.ENOSPC}
	}
	n := copy(d.data[d.pos:], d.limit(p))
	d.writes = append(d.writes, write{off: d.pos, n: n})
	d.pos += int64(n)
	return n, nil
}

func (d *memDevice) Seek(offset int64, whence int) (int64, error) {
	if d.seekErr != nil {
		return 0, d.seekErr
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = d.pos + offset
	case io.SeekEnd:
		abs = int64(len(d.data)) + offset
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	d.pos = abs
	return abs, nil
}

func (d *memDevice) bytesWritten() int {
	total := 0
	for _, w := range d.writes {
		total += w.n
	}
	return total
}

// pattern returns n bytes that do not repeat within any small block size.
func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7) ^ seed
	}
	return b
}

func interrupted(op string) error {
	return &os.PathError{Op: op, Path: "mem", Err: syscall.EINTR}
}

func wouldBlock(op string) error {
	return &os.PathError{Op: op, Path: "mem", Err: syscall.EAGAIN}
}
