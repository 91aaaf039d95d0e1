// Package term binds the animation loop's collaborator interfaces to a
// tcell screen: raw/cbreak mode, the alternate buffer, cursor visibility,
// resize tracking, and physical escape emission all live behind tcell.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skyburst/render"
)

// Screen wraps a tcell.Screen as a non-blocking key source, a size source,
// and a render sink. The event pump goroutine only forwards events into a
// channel; all state mutation happens on the caller's goroutine.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event

	closeOnce sync.Once

	// Sink cursor, row-major per the instruction stream contract
	x, y  int
	style tcell.Style
}

// Open initializes the terminal: raw mode, alternate screen, hidden cursor.
// The returned Screen must be released with Close on every exit path.
func Open() (*Screen, error) {
	sc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := sc.Init(); err != nil {
		return nil, err
	}
	sc.HideCursor()

	s := &Screen{
		screen: sc,
		events: make(chan tcell.Event, 64),
		style:  tcell.StyleDefault,
	}
	go s.pump()
	return s, nil
}

// pump forwards blocking PollEvent results into the poll channel.
// ChannelEvents unblocks and returns when the screen is finalized.
func (s *Screen) pump() {
	quit := make(chan struct{})
	s.screen.ChannelEvents(s.events, quit)
}

// Close restores the terminal to its prior mode. Safe to call repeatedly,
// including from a panic handler.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		s.screen.Fini()
	})
}

// PollKey returns the next pending key press, if any, without blocking.
// Resize and other events are discarded here; the loop re-queries Size
// every frame. Ctrl-C arrives as a key in raw mode and maps to quit.
func (s *Screen) PollKey() (rune, bool) {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return 'q', true
			}
			key, isKey := ev.(*tcell.EventKey)
			if !isKey {
				continue
			}
			switch key.Key() {
			case tcell.KeyRune:
				return key.Rune(), true
			case tcell.KeyCtrlC, tcell.KeyEscape:
				return 'q', true
			default:
				continue
			}
		default:
			return 0, false
		}
	}
}

// Size returns the current terminal dimensions in cells
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// toStyle converts the buffer's tagged color into a tcell style
func toStyle(c render.Color) tcell.Style {
	rgb, ok := c.RGB()
	if !ok {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
}

// SetColor switches the style for subsequent glyphs
func (s *Screen) SetColor(c render.Color) {
	s.style = toStyle(c)
}

// Glyph writes the next cell and advances one column
func (s *Screen) Glyph(r rune) {
	s.screen.SetContent(s.x, s.y, r, nil, s.style)
	s.x++
}

// Reset restores the default style and starts the next row
func (s *Screen) Reset() {
	s.style = tcell.StyleDefault
	s.x = 0
	s.y++
}

// Flush commits the finished frame and rewinds the sink cursor
func (s *Screen) Flush() {
	s.screen.Show()
	s.x = 0
	s.y = 0
}
