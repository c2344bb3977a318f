package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"bdrsync/bdsync"
	"bdrsync/tui"
)

// redrawInterval throttles screen updates on fast devices.
const redrawInterval = 100 * time.Millisecond

// screenProgress renders a run as a fullscreen block map.
type screenProgress struct {
	ui     *tui.UI
	dryRun bool
	now    func() time.Time

	plan     bdsync.Plan
	tracker  *blockTracker
	started  time.Time
	lastDraw time.Time
}

var _ bdsync.Observer = (*screenProgress)(nil)

func newScreenProgress(ui *tui.UI, dryRun bool) *screenProgress {
	return &screenProgress{ui: ui, dryRun: dryRun, now: time.Now}
}

func (p *screenProgress) Begin(plan bdsync.Plan) {
	p.plan = plan
	p.tracker = newBlockTracker(plan.Blocks())
	p.started = p.now()

	mode := "SYNC"
	if p.dryRun {
		mode = "DRY RUN"
	}
	p.ui.SetTitle(fmt.Sprintf(" %s  %s → %s ", mode, plan.Source, plan.Target))

	tail := "no tail"
	if plan.Remainder > 0 {
		tail = fmt.Sprintf("%d-byte tail", plan.Remainder)
	}
	p.ui.SetSummary([]string{
		fmt.Sprintf("Size: %s (%d bytes)   Block size: %d", humanize.IBytes(uint64(plan.SourceSize)), plan.SourceSize, plan.BlockSize),
		fmt.Sprintf("Blocks: %d full, %s", plan.FullBlocks, tail),
	})
	p.ui.SetLegend([]string{
		fmt.Sprintf("Legend:  %c patched   %c unchanged   %c pending | Q to quit", cellPatched, cellUnchanged, cellPending),
	})
	p.refresh()
}

func (p *screenProgress) Block(index int64, length int, o bdsync.Outcome) {
	p.tracker.mark(index, length, o)
	if index == p.plan.Blocks()-1 || p.now().Sub(p.lastDraw) >= redrawInterval {
		p.refresh()
	}
}

func (p *screenProgress) End(*bdsync.Report) {
	p.refresh()
}

func (p *screenProgress) refresh() {
	w, rows := p.ui.MapArea()
	p.ui.SetBlockMap(p.mapRows(w, rows))
	p.ui.SetStatus(p.statusLines())
	p.ui.Draw()
	p.lastDraw = p.now()
}

// mapRows lays the blocks out one cell each, scrolling to follow the scan.
func (p *screenProgress) mapRows(w, rows int) []string {
	if w <= 0 || rows <= 0 || p.tracker.total == 0 {
		return nil
	}
	cells := int64(w) * int64(rows)
	start := p.tracker.window(cells)

	var out []string
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < w; c++ {
			abs := start + int64(r*w+c)
			if abs >= p.tracker.total {
				break
			}
			b.WriteRune(p.tracker.cell(abs))
		}
		if b.Len() == 0 {
			break
		}
		out = append(out, b.String())
	}
	return out
}

func (p *screenProgress) statusLines() []string {
	t := p.tracker
	scanned, patched := t.scannedCount(), t.patchedCount()
	elapsed := p.now().Sub(p.started).Truncate(time.Second)

	var rate float64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(t.bytesScanned) / secs
	}
	eta := "—"
	if rate > 0 {
		remain := float64(p.plan.SourceSize - t.bytesScanned)
		eta = time.Duration(remain / rate * float64(time.Second)).Truncate(time.Second).String()
	}

	written := "Written"
	if p.dryRun {
		written = "Would write"
	}
	return []string{
		fmt.Sprintf("Blocks: %d / %d   Patched: %d   Unchanged: %d", scanned, t.total, patched, scanned-patched),
		fmt.Sprintf("Compared: %s   %s: %s", humanize.IBytes(uint64(t.bytesScanned)), written, humanize.IBytes(uint64(t.bytesPatched))),
		fmt.Sprintf("Elapsed: %s   Rate: %s/s   ETA: %s", elapsed, humanize.IBytes(uint64(rate)), eta),
	}
}
