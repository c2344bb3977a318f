package main

import (
	"fmt"
	"io"

	"bdrsync/bdsync"
)

// progressWidth is the number of marks printed per line.
const progressWidth = 80

// lineProgress prints the run header and, when verbose, one mark per block:
// '+' for a patched block and '.' for an unchanged one.
type lineProgress struct {
	w       io.Writer
	verbose bool
	col     int
	ended   bool
}

var _ bdsync.Observer = (*lineProgress)(nil)

func newLineProgress(w io.Writer, verbose bool) *lineProgress {
	return &lineProgress{w: w, verbose: verbose}
}

func (p *lineProgress) Begin(plan bdsync.Plan) {
	fmt.Fprintf(p.w, "%d %d %d\n", plan.SourceSize, plan.FullBlocks, plan.BlockSize)
}

func (p *lineProgress) Block(_ int64, _ int, o bdsync.Outcome) {
	if !p.verbose {
		return
	}
	if p.col == progressWidth {
		fmt.Fprint(p.w, "\n")
		p.col = 0
	}
	mark := "."
	if o == bdsync.Patched {
		mark = "+"
	}
	fmt.Fprint(p.w, mark)
	p.col++
}

// End closes the progress display with a line break.
func (p *lineProgress) End(*bdsync.Report) {
	if p.ended {
		return
	}
	fmt.Fprint(p.w, "\n")
	p.col = 0
	p.ended = true
}

// finish terminates a partial line of marks after a failed run. It is safe to
// call more than once.
func (p *lineProgress) finish() {
	if p.ended || !p.verbose || p.col == 0 {
		return
	}
	fmt.Fprint(p.w, "\n")
	p.col = 0
	p.ended = true
}

// fanout forwards every event to each observer in order.
type fanout []bdsync.Observer

func (f fanout) Begin(plan bdsync.Plan) {
	for _, o := range f {
		o.Begin(plan)
	}
}

func (f fanout) Block(index int64, length int, outcome bdsync.Outcome) {
	for _, o := range f {
		o.Block(index, length, outcome)
	}
}

func (f fanout) End(report *bdsync.Report) {
	for _, o := range f {
		o.End(report)
	}
}
