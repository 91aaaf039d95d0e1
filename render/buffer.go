package render

// Minimum buffer dimensions; protects the compositor against degenerate
// terminal sizes reported during startup or extreme resizes
const (
	MinWidth  = 20
	MinHeight = 10
)

// Cell is a single glyph with an optional foreground color
type Cell struct {
	Rune rune
	Fg   Color
}

// Sink receives the draw instruction stream produced by FrameBuffer.Render.
// The stream is row-major over the full grid: exactly Width() Glyph calls
// per row, SetColor only where the color changes within the row scan, and
// one Reset terminating each row. Implementations track their own cursor.
type Sink interface {
	// SetColor switches the color used for subsequent glyphs
	SetColor(c Color)
	// Glyph emits the next cell's rune and advances one column
	Glyph(r rune)
	// Reset restores the default color and terminates the current row
	Reset()
}

// FrameBuffer is a double-buffer-style compositor grid. Writes are
// bounds-checked no-ops outside the grid, so callers never need to clip.
type FrameBuffer struct {
	width  int
	height int
	cells  []Cell
}

// NewFrameBuffer creates a cleared buffer, clamped to minimum dimensions
func NewFrameBuffer(width, height int) *FrameBuffer {
	b := &FrameBuffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width
func (b *FrameBuffer) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *FrameBuffer) Height() int {
	return b.height
}

// Resize reallocates the grid, discarding prior contents
func (b *FrameBuffer) Resize(width, height int) {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets every cell to blank/uncolored using exponential copy
func (b *FrameBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: Default}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Put writes a cell if (x, y) is within bounds, otherwise does nothing
func (b *FrameBuffer) Put(x, y int, r rune, fg Color) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg}
}

// At returns the cell at (x, y) and whether the position is in bounds
func (b *FrameBuffer) At(x, y int) (Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Render serializes the grid into the sink as a minimal instruction stream.
// Color instructions are emitted only on transitions within a row scan; the
// tracked color starts each row as Default, so fully blank regions cost no
// color instructions at all. Work is O(cells), escape volume is O(color
// transitions).
func (b *FrameBuffer) Render(s Sink) {
	for y := 0; y < b.height; y++ {
		last := Default
		row := b.cells[y*b.width : (y+1)*b.width]
		for _, c := range row {
			if c.Fg != last {
				s.SetColor(c.Fg)
				last = c.Fg
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.Glyph(r)
		}
		s.Reset()
	}
}
