package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimUI(t *testing.T, w, h int) (tcell.SimulationScreen, *UI) {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	u, err := NewWithScreen(s)
	require.NoError(t, err)
	s.SetSize(w, h)
	t.Cleanup(u.Close)
	return s, u
}

func screenRows(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

func TestMapArea(t *testing.T) {
	_, u := newSimUI(t, 40, 10)
	u.SetTitle("SYNC")
	u.SetSummary([]string{"summary"})
	u.SetLegend([]string{"legend"})
	u.SetStatus([]string{"one", "two"})

	w, rows := u.MapArea()
	assert.Equal(t, 40, w)
	assert.Equal(t, 4, rows)
}

func TestDrawLayout(t *testing.T) {
	s, u := newSimUI(t, 20, 8)
	u.SetTitle("SYNC")
	u.SetSummary([]string{"src -> dst"})
	u.SetLegend([]string{"legend"})
	u.SetBlockMap([]string{"██··", "░░░░", "····", "not drawn"})
	u.SetStatus([]string{"Blocks: 4/8"})
	u.Draw()

	rows := screenRows(s)
	assert.Contains(t, rows[0], "SYNC")
	assert.Equal(t, "src -> dst", rows[1])
	assert.Equal(t, "legend", rows[2])
	assert.Equal(t, "██··", rows[3])
	assert.Equal(t, "░░░░", rows[4])
	assert.Equal(t, "····", rows[5])
	assert.Contains(t, rows[6], "Status")
	assert.Equal(t, "Blocks: 4/8", rows[7])
	for _, r := range rows {
		assert.NotContains(t, r, "not drawn")
	}
}

func TestDrawTruncatesLongLines(t *testing.T) {
	s, u := newSimUI(t, 10, 3)
	u.SetSummary([]string{strings.Repeat("x", 30)})
	u.Draw()

	assert.Equal(t, strings.Repeat("x", 10), screenRows(s)[0])
}

func TestQuitKeyRequestsStop(t *testing.T) {
	s, u := newSimUI(t, 10, 3)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-u.Stopped():
	case <-time.After(2 * time.Second):
		t.Fatal("q did not request a stop")
	}
}

func TestRequestStopTwice(t *testing.T) {
	_, u := newSimUI(t, 10, 3)
	u.RequestStop()
	u.RequestStop()

	select {
	case <-u.Stopped():
	default:
		t.Fatal("expected stopped")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	_, u := newSimUI(t, 10, 3)
	u.Close()
	u.Close()
	u.Draw()

	w, h := u.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}
