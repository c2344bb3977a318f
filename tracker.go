package main

import (
	"github.com/bits-and-blooms/bitset"

	"bdrsync/bdsync"
)

// blockTracker records which blocks of a run have been scanned and patched.
type blockTracker struct {
	total   int64
	scanned *bitset.BitSet
	patched *bitset.BitSet

	current      int64
	bytesScanned int64
	bytesPatched int64
}

func newBlockTracker(total int64) *blockTracker {
	return &blockTracker{
		total:   total,
		scanned: bitset.New(uint(total)),
		patched: bitset.New(uint(total)),
		current: -1,
	}
}

func (t *blockTracker) mark(index int64, length int, o bdsync.Outcome) {
	if index < 0 || index >= t.total {
		return
	}
	t.scanned.Set(uint(index))
	t.bytesScanned += int64(length)
	if o == bdsync.Patched {
		t.patched.Set(uint(index))
		t.bytesPatched += int64(length)
	}
	t.current = index
}

func (t *blockTracker) scannedCount() int64 { return int64(t.scanned.Count()) }

func (t *blockTracker) patchedCount() int64 { return int64(t.patched.Count()) }

const (
	cellPatched   = '█'
	cellUnchanged = '·'
	cellPending   = '░'
)

// cell returns the glyph for one block.
func (t *blockTracker) cell(index int64) rune {
	switch {
	case t.patched.Test(uint(index)):
		return cellPatched
	case t.scanned.Test(uint(index)):
		return cellUnchanged
	default:
		return cellPending
	}
}

// window returns the first block of a rows×width view that keeps the most
// recently scanned block visible.
func (t *blockTracker) window(cells int64) int64 {
	if t.total <= cells || t.current < cells {
		return 0
	}
	return t.current - (cells - 1)
}
