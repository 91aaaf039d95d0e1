package render

import (
	"math"
	"testing"
)

// recordingSink captures the instruction stream for assertions
type recordingSink struct {
	colors []Color
	glyphs []rune
	resets int
}

func (s *recordingSink) SetColor(c Color) { s.colors = append(s.colors, c) }
func (s *recordingSink) Glyph(r rune)     { s.glyphs = append(s.glyphs, r) }
func (s *recordingSink) Reset()           { s.resets++ }

func TestNewFrameBufferAppliesFloor(t *testing.T) {
	b := NewFrameBuffer(1, 1)
	if b.Width() != MinWidth || b.Height() != MinHeight {
		t.Errorf("Expected floor %dx%d, got %dx%d", MinWidth, MinHeight, b.Width(), b.Height())
	}
}

func TestPutOutOfBoundsIsNoOp(t *testing.T) {
	b := NewFrameBuffer(40, 20)
	coords := [][2]int{
		{-1, 5}, {5, -1}, {40, 5}, {5, 20},
		{math.MaxInt, math.MaxInt}, {math.MinInt, math.MinInt},
		{math.MaxInt, 0}, {0, math.MinInt},
	}
	for _, c := range coords {
		b.Put(c[0], c[1], 'X', Rgb(255, 0, 0))
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell, ok := b.At(x, y)
			if !ok {
				t.Fatalf("Expected cell at (%d, %d) to exist", x, y)
			}
			if cell.Rune != ' ' || cell.Fg != Default {
				t.Errorf("Cell (%d, %d) mutated by out-of-bounds writes: %+v", x, y, cell)
			}
		}
	}
}

func TestResizeSequence(t *testing.T) {
	b := NewFrameBuffer(40, 20)

	b.Resize(10, 5)
	if b.Width() != 20 || b.Height() != 10 {
		t.Errorf("Expected floor-adjusted 20x10, got %dx%d", b.Width(), b.Height())
	}

	b.Resize(60, 30)
	if b.Width() != 60 || b.Height() != 30 {
		t.Errorf("Expected 60x30, got %dx%d", b.Width(), b.Height())
	}

	// Resize discards prior contents
	cell, ok := b.At(5, 5)
	if !ok || cell.Rune != ' ' || cell.Fg != Default {
		t.Errorf("Expected blank cell after resize, got %+v (ok=%v)", cell, ok)
	}
}

func TestBlankRenderEmitsNoColorInstructions(t *testing.T) {
	small := NewFrameBuffer(20, 10)
	large := NewFrameBuffer(200, 60)

	for _, b := range []*FrameBuffer{small, large} {
		sink := &recordingSink{}
		b.Render(sink)
		if len(sink.colors) != 0 {
			t.Errorf("Blank %dx%d buffer emitted %d color instructions, want 0",
				b.Width(), b.Height(), len(sink.colors))
		}
		if sink.resets != b.Height() {
			t.Errorf("Expected one reset per row (%d), got %d", b.Height(), sink.resets)
		}
		if len(sink.glyphs) != b.Width()*b.Height() {
			t.Errorf("Expected %d glyphs, got %d", b.Width()*b.Height(), len(sink.glyphs))
		}
	}
}

func TestSameColorRunEmitsSingleColorChange(t *testing.T) {
	b := NewFrameBuffer(40, 20)
	red := Rgb(255, 0, 0)
	b.Put(5, 5, 'A', red)
	b.Put(6, 5, 'B', red)

	sink := &recordingSink{}
	b.Render(sink)

	// Row 5 scan: Default run, one change to red, one change back to Default
	var redChanges int
	for _, c := range sink.colors {
		if c == red {
			redChanges++
		}
	}
	if redChanges != 1 {
		t.Errorf("Expected exactly 1 color change for the same-color run, got %d", redChanges)
	}

	if sink.glyphs[5*40+5] != 'A' || sink.glyphs[5*40+6] != 'B' {
		t.Error("Expected glyphs 'A' and 'B' at their put positions in the stream")
	}
}

func TestRenderColorTransitions(t *testing.T) {
	b := NewFrameBuffer(20, 10)
	b.Put(0, 0, 'a', Rgb(10, 20, 30))
	b.Put(1, 0, 'b', Rgb(40, 50, 60))
	b.Put(2, 0, 'c', Rgb(40, 50, 60))

	sink := &recordingSink{}
	b.Render(sink)

	// Transitions on row 0: default→c1, c1→c2, c2→default. No others.
	if len(sink.colors) != 3 {
		t.Errorf("Expected 3 color instructions, got %d: %v", len(sink.colors), sink.colors)
	}
}

func TestColorTaggedVariant(t *testing.T) {
	if !Default.IsDefault() {
		t.Error("Zero value must be the default color")
	}
	c := Rgb(1, 2, 3)
	if c.IsDefault() {
		t.Error("Rgb color must not be default")
	}
	rgb, ok := c.RGB()
	if !ok || rgb != (RGB{1, 2, 3}) {
		t.Errorf("Expected RGB{1,2,3}, got %+v (ok=%v)", rgb, ok)
	}
	if c == Default {
		t.Error("Set color must not compare equal to Default")
	}
	if Rgb(0, 0, 0) == Default {
		t.Error("Black must remain distinct from Default")
	}
}

func TestScaleClamps(t *testing.T) {
	c := RGB{200, 100, 50}
	if c.Scale(-1) != RGBBlack {
		t.Error("Negative factor must clamp to black")
	}
	if c.Scale(2) != c {
		t.Error("Factor above 1 must return the base color")
	}
	half := c.Scale(0.5)
	if half.R != 100 || half.G != 50 || half.B != 25 {
		t.Errorf("Unexpected half scale: %+v", half)
	}
}

func TestPastel(t *testing.T) {
	p := RGB{0, 100, 255}.Pastel()
	if p.R != 127 || p.G != 177 || p.B != 255 {
		t.Errorf("Unexpected pastel blend: %+v", p)
	}
}
