package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdrsync/bdsync"
	"bdrsync/tui"
)

func newTestScreen(t *testing.T, w, h int) (tcell.SimulationScreen, *screenProgress, *time.Time) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	ui, err := tui.NewWithScreen(sim)
	require.NoError(t, err)
	sim.SetSize(w, h)
	t.Cleanup(ui.Close)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := newScreenProgress(ui, false)
	p.now = func() time.Time { return clock }
	return sim, p, &clock
}

func simText(s tcell.SimulationScreen) string {
	cells, _, _ := s.GetContents()
	var b strings.Builder
	for _, c := range cells {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		}
	}
	return b.String()
}

func TestScreenProgressMapAndStatus(t *testing.T) {
	_, p, clock := newTestScreen(t, 10, 20)

	plan := bdsync.Plan{Source: "/dev/sda", Target: "/dev/sdb", SourceSize: 1000, BlockSize: 300, FullBlocks: 3, Remainder: 100}
	p.Begin(plan)
	p.Block(0, 300, bdsync.Unchanged)
	p.Block(1, 300, bdsync.Patched)
	*clock = clock.Add(2 * time.Second)

	assert.Equal(t, []string{"·█░░"}, p.mapRows(10, 5))

	status := p.statusLines()
	require.Len(t, status, 3)
	assert.Equal(t, "Blocks: 2 / 4   Patched: 1   Unchanged: 1", status[0])
	assert.Equal(t, "Compared: 600 B   Written: 300 B", status[1])
	assert.Contains(t, status[2], "Elapsed: 2s")
	assert.Contains(t, status[2], "Rate: 300 B/s")
}

func TestScreenProgressMapScrolls(t *testing.T) {
	_, p, _ := newTestScreen(t, 10, 20)

	p.Begin(bdsync.Plan{SourceSize: 50 * 512, BlockSize: 512, FullBlocks: 50})
	for i := int64(0); i < 30; i++ {
		p.Block(i, 512, bdsync.Unchanged)
	}

	rows := p.mapRows(4, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, "····", rows[0])
	assert.Equal(t, "····", rows[1])

	p.Block(30, 512, bdsync.Patched)
	rows = p.mapRows(4, 2)
	assert.Equal(t, "···█", rows[1])
}

func TestScreenProgressDraws(t *testing.T) {
	sim, p, _ := newTestScreen(t, 60, 20)

	p.Begin(bdsync.Plan{Source: "/dev/sda", Target: "/dev/sdb", SourceSize: 1024, BlockSize: 512, FullBlocks: 2})
	p.Block(0, 512, bdsync.Patched)
	p.Block(1, 512, bdsync.Unchanged)
	p.End(nil)

	text := simText(sim)
	assert.Contains(t, text, "SYNC")
	assert.Contains(t, text, "/dev/sdb")
	assert.Contains(t, text, "█·")
	assert.Contains(t, text, "Blocks: 2 / 2")
}
