// Package tui draws a fullscreen terminal view for a long-running device
// operation: a title, summary lines, a legend, a block map and a status block.
//
// The package only renders what it is given. Callers own the progress state
// and call Draw after updating it.
package tui

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UI is a fullscreen terminal view. Q, Esc and Ctrl+C request a stop, which
// callers observe through Stopped.
type UI struct {
	s    tcell.Screen
	stop chan struct{}
	once sync.Once

	title    string
	summary  []string
	legend   []string
	blockMap []string
	status   []string
}

// New takes over the terminal.
func New() (*UI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s and draws on it.
func NewWithScreen(s tcell.Screen) (*UI, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.DisableMouse()
	u := &UI{
		s:    s,
		stop: make(chan struct{}),
	}
	go u.eventLoop(s)
	return u, nil
}

// Close restores the terminal. Further draws are no-ops.
func (u *UI) Close() {
	if u.s == nil {
		return
	}
	u.s.Fini()
	u.s = nil
}

// RequestStop marks the UI as stopped. It can be called more than once.
func (u *UI) RequestStop() {
	u.once.Do(func() { close(u.stop) })
}

// Stopped is closed once the user asks to stop.
func (u *UI) Stopped() <-chan struct{} {
	return u.stop
}

// Size returns the screen width and height, or zeros after Close.
func (u *UI) Size() (width, height int) {
	if u.s == nil {
		return 0, 0
	}
	return u.s.Size()
}

// MapArea returns the width and number of rows left for the block map by the
// current title, summary, legend and status lines.
func (u *UI) MapArea() (width, rows int) {
	w, h := u.Size()
	rows = h - u.headerRows() - u.statusRows()
	if rows < 0 {
		rows = 0
	}
	return w, rows
}

func (u *UI) headerRows() int {
	n := len(u.summary) + len(u.legend)
	if u.title != "" {
		n++
	}
	return n
}

func (u *UI) statusRows() int {
	if len(u.status) == 0 {
		return 0
	}
	return len(u.status) + 1
}

// SetTitle sets the centered title on the first row.
func (u *UI) SetTitle(t string) { u.title = t }

// SetSummary sets the lines shown under the title.
func (u *UI) SetSummary(lines []string) { u.summary = append([]string(nil), lines...) }

// SetLegend sets the lines shown between the summary and the block map.
func (u *UI) SetLegend(lines []string) { u.legend = append([]string(nil), lines...) }

// SetBlockMap sets the block map rows. Rows beyond MapArea are not drawn.
func (u *UI) SetBlockMap(rows []string) { u.blockMap = append([]string(nil), rows...) }

// SetStatus sets the lines of the status block at the bottom.
func (u *UI) SetStatus(lines []string) { u.status = append([]string(nil), lines...) }

// Draw repaints the whole screen.
func (u *UI) Draw() {
	if u.s == nil {
		return
	}
	s := u.s
	s.Clear()
	w, h := s.Size()

	y := 0
	line := func(text string) {
		if y < h {
			putStr(s, 0, y, text)
			y++
		}
	}

	if u.title != "" {
		rule(s, y, w, "")
		putStr(s, (w-len([]rune(u.title)))/2, y, u.title)
		y++
	}
	for _, l := range u.summary {
		line(l)
	}
	for _, l := range u.legend {
		line(l)
	}

	_, rows := u.MapArea()
	for i := 0; i < rows && i < len(u.blockMap); i++ {
		line(u.blockMap[i])
	}

	if len(u.status) > 0 && y < h {
		rule(s, y, w, " Status ")
		y++
		for _, l := range u.status {
			line(l)
		}
	}

	s.Show()
}

func rule(s tcell.Screen, y, w int, label string) {
	putStr(s, 0, y, strings.Repeat("─", w))
	if label != "" {
		putStr(s, 2, y, label)
	}
}

func putStr(s tcell.Screen, x, y int, str string) {
	w, _ := s.Size()
	if x < 0 {
		x = 0
	}
	for i, r := range []rune(str) {
		if x+i >= w {
			break
		}
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func (u *UI) eventLoop(s tcell.Screen) {
	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape:
				u.RequestStop()
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				u.RequestStop()
			}
		case *tcell.EventResize:
			s.Sync()
		case nil:
			return
		}
	}
}
