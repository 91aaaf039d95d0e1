package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/skyburst/render"
)

// title shimmer sweep period in frames
const shimmerCycle = 120

// Overlay text colors
var (
	titleBase      = render.RGB{R: 255, G: 196, B: 64}
	titleHighlight = render.RGB{R: 255, G: 255, B: 235}
	subtitleColor  = render.Rgb(150, 150, 170)
	underlineA     = render.Rgb(255, 140, 40)
	underlineB     = render.Rgb(90, 140, 255)
	footerColor    = render.Rgb(110, 110, 120)
)

// Composer orchestrates one frame: background, stars, particles, overlay
type Composer struct {
	rng      *rand.Rand
	Title    string
	Subtitle string
}

// NewComposer creates a composer using the injected random source
func NewComposer(rng *rand.Rand, title, subtitle string) *Composer {
	return &Composer{
		rng:      rng,
		Title:    title,
		Subtitle: subtitle,
	}
}

// Frame clears the buffer and composites the whole scene for elapsed time t
// (seconds) and the given frame index. Safe for any buffer at or above the
// render floor; all drawing clips via FrameBuffer.Put.
func (c *Composer) Frame(fb *render.FrameBuffer, stars *StarField, particles *ParticleSystem, t float64, frame int, fps float64) {
	fb.Clear()

	c.drawBackground(fb, t)

	// The field breathes: forward speed oscillates instead of scrolling flat
	speed := 0.012 + 0.010*(0.5+0.5*math.Sin(t*0.8))
	stars.Step(speed, fb.Width(), fb.Height())
	stars.Draw(fb)

	particles.Step()
	c.drawParticles(fb, particles)

	c.drawOverlay(fb, frame)
	c.drawFooter(fb, fps, particles.Count())
}

// drawBackground tints a sparse scatter of cells in the top quarter with a
// dim bluish shade. Atmosphere, not signal: ~0.5% of the region per frame.
func (c *Composer) drawBackground(fb *render.FrameBuffer, t float64) {
	w := fb.Width()
	region := fb.Height() / 4
	count := w * region / 200
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		x := c.rng.Intn(w)
		y := c.rng.Intn(region)
		// Two phase-shifted sinusoids give a slow spatial drift
		v := 0.5 + 0.25*math.Sin(0.13*float64(x)+t*0.7) + 0.25*math.Sin(0.09*float64(y)-t*1.1)
		shade := uint8(18 + v*42)
		fb.Put(x, y, '·', render.Rgb(shade/3, shade/2, shade))
	}
}

// drawParticles draws each live particle with its faded color plus a cheap
// motion-blur decoration: with independent 25% probability a half-intensity
// dot one column left and one column right. Render-time only; the particle
// state is never touched.
func (c *Composer) drawParticles(fb *render.FrameBuffer, particles *ParticleSystem) {
	for i := range particles.Particles() {
		p := &particles.Particles()[i]
		x := int(math.Round(p.X))
		y := int(math.Round(p.Y))
		col := p.FadedColor()
		fb.Put(x, y, p.Glyph, render.FromRGB(col))

		half := render.FromRGB(col.Scale(0.5))
		if c.rng.Float64() < 0.25 {
			fb.Put(x-1, y, '·', half)
		}
		if c.rng.Float64() < 0.25 {
			fb.Put(x+1, y, '·', half)
		}
	}
}

// drawOverlay renders the centered title with a sweeping shimmer, the muted
// subtitle, and the two-color traveling underline
func (c *Composer) drawOverlay(fb *render.FrameBuffer, frame int) {
	w := fb.Width()
	titleRow := fb.Height() / 3

	titleWidth := runewidth.StringWidth(c.Title)
	startX := (w - titleWidth) / 2

	// Highlight column sweeps left to right, wrapping every shimmerCycle
	sweep := float64(frame%shimmerCycle) / shimmerCycle * float64(titleWidth)

	x := startX
	for _, r := range c.Title {
		col := float64(x - startX)
		dist := math.Abs(col - sweep)
		// Wrapped distance so the shimmer re-enters smoothly
		if alt := float64(titleWidth) - dist; alt < dist {
			dist = alt
		}
		glow := math.Max(0, 1.0-dist/4.0)
		fb.Put(x, titleRow, r, render.FromRGB(lerpRGB(titleBase, titleHighlight, glow)))
		x += runewidth.RuneWidth(r)
	}

	// Underline: segments alternate between two colors on a traveling wave
	phase := float64(frame) * 0.15
	for i := 0; i < titleWidth; i++ {
		col := underlineA
		if math.Sin(float64(i)*0.7-phase) > 0 {
			col = underlineB
		}
		fb.Put(startX+i, titleRow+1, '─', col)
	}

	subWidth := runewidth.StringWidth(c.Subtitle)
	x = (w - subWidth) / 2
	for _, r := range c.Subtitle {
		fb.Put(x, titleRow+3, r, subtitleColor)
		x += runewidth.RuneWidth(r)
	}
}

// drawFooter writes the live FPS and particle count, clipped to the width
func (c *Composer) drawFooter(fb *render.FrameBuffer, fps float64, count int) {
	text := fmt.Sprintf(" %5.1f fps   %d particles   [space] launch  [s] sound  [q] quit", fps, count)
	y := fb.Height() - 1
	for x, r := range text {
		fb.Put(x, y, r, footerColor)
	}
}

// lerpRGB interpolates between two colors, clamping t to [0, 1]
func lerpRGB(a, b render.RGB, t float64) render.RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return render.RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}
