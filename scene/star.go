package scene

import (
	"math/rand"

	"github.com/lixenwraith/skyburst/render"
)

// Star depth below this threshold triggers a slot respawn
const starNearPlane = 0.02

// Star is one depth-projected point of the flying starfield.
// Position is in viewport-centered coordinates, depth Z in (starNearPlane, 1].
type Star struct {
	X, Y   float64
	Z      float64
	VX, VY float64
}

// StarField simulates forward motion through a field of drifting stars.
// Stars are recycled at the near plane rather than destroyed, so the field
// never thins out.
type StarField struct {
	rng   *rand.Rand
	stars []Star
}

// NewStarField seeds count stars across the given viewport
func NewStarField(rng *rand.Rand, count, width, height int) *StarField {
	f := &StarField{
		rng:   rng,
		stars: make([]Star, count),
	}
	for i := range f.stars {
		f.respawn(&f.stars[i], width, height)
	}
	return f
}

// respawn reinitializes a star slot with fresh position/depth/velocity
func (f *StarField) respawn(s *Star, width, height int) {
	w := float64(width)
	h := float64(height)
	s.X = (f.rng.Float64()*2 - 1) * w
	s.Y = (f.rng.Float64()*2 - 1) * h
	s.Z = 0.2 + f.rng.Float64()*0.8
	s.VX = (f.rng.Float64()*2 - 1) * 0.05
	s.VY = (f.rng.Float64()*2 - 1) * 0.03
}

// Step advances every star toward the viewer and recycles near-plane hits
func (f *StarField) Step(speed float64, width, height int) {
	for i := range f.stars {
		s := &f.stars[i]
		s.Z -= speed
		s.X += s.VX
		s.Y += s.VY
		if s.Z <= starNearPlane {
			f.respawn(s, width, height)
		}
	}
}

// Stars exposes the live slots for drawing and tests
func (f *StarField) Stars() []Star {
	return f.stars
}

// Project maps a star to integer screen coordinates via perspective divide.
// The X/Y scales differ because terminal cells are taller than wide.
func (s *Star) Project(centerX, centerY float64) (int, int) {
	sx := centerX + (s.X/s.Z)*0.10
	sy := centerY + (s.Y/s.Z)*0.06
	return int(sx), int(sy)
}

// Brightness derives the render intensity from depth: near stars are bright
func (s *Star) Brightness() uint8 {
	b := 60 + (1-s.Z)*195
	if b < 60 {
		b = 60
	}
	if b > 255 {
		b = 255
	}
	return uint8(b)
}

// starGlyph picks the glyph tier for a brightness level
func starGlyph(brightness uint8) rune {
	switch {
	case brightness > 210:
		return '✦'
	case brightness > 170:
		return '*'
	case brightness > 120:
		return '•'
	default:
		return '·'
	}
}

// Draw composites the projected field into the buffer
func (f *StarField) Draw(fb *render.FrameBuffer) {
	cx := float64(fb.Width()) / 2
	cy := float64(fb.Height()) / 2
	for i := range f.stars {
		s := &f.stars[i]
		x, y := s.Project(cx, cy)
		b := s.Brightness()
		// Cold white with a slight blue cast
		fb.Put(x, y, starGlyph(b), render.Rgb(b-b/8, b-b/8, b))
	}
}
