package bdsync

import (
	"bytes"
	"io"
)

// Outcome is the result of synchronizing one block.
type Outcome int

const (
	// Unchanged means source and target already held the same bytes.
	Unchanged Outcome = iota
	// Patched means the target block was (or, in a dry run, would be) rewritten.
	Patched
)

func (o Outcome) String() string {
	if o == Patched {
		return "patched"
	}
	return "unchanged"
}

// Source is the device blocks are copied from. It is only read.
type Source struct {
	Name      string
	R         io.Reader
	BlockSize int
	Size      int64
}

// Target is the device that gets patched. It must support reading, writing
// and seeking relative to the current position.
type Target struct {
	Name      string
	RW        io.ReadWriteSeeker
	BlockSize int
}

// SyncBlock compares the next length bytes of src and dst and, if they
// differ, overwrites them on dst with the source bytes.
//
// Both devices are read at their current positions and both positions end up
// length bytes further along. srcBuf and dstBuf must hold at least length
// bytes. In a dry run a differing block is reported as Patched but not written.
func SyncBlock(src Source, srcBuf []byte, dst Target, dstBuf []byte, length int, dryRun bool) (Outcome, error) {
	want, have := srcBuf[:length], dstBuf[:length]

	if err := ReadFull(src.R, src.Name, want); err != nil {
		return Unchanged, err
	}
	if err := ReadFull(dst.RW, dst.Name, have); err != nil {
		return Unchanged, err
	}

	if bytes.Equal(want, have) {
		return Unchanged, nil
	}
	if dryRun {
		return Patched, nil
	}

	if _, err := dst.RW.Seek(-int64(length), io.SeekCurrent); err != nil {
		return Unchanged, &IOError{Op: "seek", Device: dst.Name, Err: err}
	}
	if err := WriteFull(dst.RW, dst.Name, want); err != nil {
		return Unchanged, err
	}
	return Patched, nil
}
