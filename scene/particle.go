package scene

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/skyburst/render"
)

// ParticleKind distinguishes shells from burst debris
type ParticleKind uint8

const (
	// KindRocket is a rising shell; its expiry triggers an explosion
	KindRocket ParticleKind = iota
	// KindFragment is inert burst/glitter debris
	KindFragment
)

// Rocket launch tuning
const (
	rocketGravity = 0.09
	rocketDrag    = 0.995
	rocketGlyph   = '|'
)

// Burst cohort tuning
const (
	burstGravity = 0.10
	burstDrag    = 0.990
)

// Glitter cohort tuning
const (
	glitterGravity = 0.06
	glitterDrag    = 0.993
	glitterGlyph   = '·'
)

var burstGlyphs = []rune{'*', '✦', '+', '•'}

// Particle is a lifecycle-managed physical point
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Color   render.RGB
	Glyph   rune
	Gravity float64
	Drag    float64
	Kind    ParticleKind
}

// FadedColor returns the base color decayed quadratically toward black as
// remaining life runs out
func (p *Particle) FadedColor() render.RGB {
	if p.MaxLife <= 0 {
		return render.RGBBlack
	}
	t := float64(p.Life) / float64(p.MaxLife)
	if t < 0 {
		t = 0
	}
	return p.Color.Scale(t * t)
}

// ParticleSystem owns all live rockets and fragments
type ParticleSystem struct {
	rng       *rand.Rand
	particles []Particle
}

// NewParticleSystem creates an empty system using the injected random source
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		rng:       rng,
		particles: make([]Particle, 0, 512),
	}
}

// Count returns the number of live particles
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// Particles exposes the live set for drawing and tests.
// Iteration order is stable across a single step.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// uniform samples U(lo, hi)
func (ps *ParticleSystem) uniform(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

// uniformLife samples an integer tick count in [lo, hi]
func (ps *ParticleSystem) uniformLife(lo, hi int) int {
	return lo + ps.rng.Intn(hi-lo+1)
}

// SpawnRocket launches one shell from the lower-middle band of the screen
func (ps *ParticleSystem) SpawnRocket(width, height int) {
	w := float64(width)
	h := float64(height)
	life := ps.uniformLife(18, 28)
	ps.particles = append(ps.particles, Particle{
		X:       ps.uniform(0.2*w, 0.8*w),
		Y:       ps.uniform(0.65*h, 0.90*h),
		VX:      ps.uniform(-0.25, 0.25),
		VY:      ps.uniform(-2.6, -2.0),
		Life:    life,
		MaxLife: life,
		Color:   render.RGB{R: 210, G: 210, B: 210},
		Glyph:   rocketGlyph,
		Gravity: rocketGravity,
		Drag:    rocketDrag,
		Kind:    KindRocket,
	})
}

// Explode produces the two fragment cohorts of one burst at (x, y):
// a fast, short-lived, saturated burst and a slow, long-lived pastel glitter
func (ps *ParticleSystem) Explode(x, y float64) {
	base := ps.pickBurstColor()

	burstCount := ps.uniformLife(70, 130)
	for i := 0; i < burstCount; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.uniform(0.4, 2.6)
		life := ps.uniformLife(18, 40)
		ps.particles = append(ps.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Color:   base,
			Glyph:   burstGlyphs[ps.rng.Intn(len(burstGlyphs))],
			Gravity: burstGravity,
			Drag:    burstDrag,
			Kind:    KindFragment,
		})
	}

	pastel := base.Pastel()
	glitterCount := ps.uniformLife(40, 70)
	for i := 0; i < glitterCount; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.uniform(0.15, 1.2)
		life := ps.uniformLife(35, 65)
		ps.particles = append(ps.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Color:   pastel,
			Glyph:   glitterGlyph,
			Gravity: glitterGravity,
			Drag:    glitterDrag,
			Kind:    KindFragment,
		})
	}
}

// Step advances physics for every live particle and filters out the dead.
// A rocket explodes on its last live tick (life == 1), one step before its
// removal, so the burst appears at the shell's final position. The trigger
// predicate is "last tick before removal"; the literal 1 only holds while
// life decrements in whole ticks.
func (ps *ParticleSystem) Step() {
	type pending struct{ x, y float64 }
	var explosions []pending

	live := ps.particles[:0]
	for i := range ps.particles {
		p := ps.particles[i]
		p.VX *= p.Drag
		p.VY = p.VY*p.Drag + p.Gravity
		p.X += p.VX
		p.Y += p.VY
		p.Life--

		if p.Kind == KindRocket && p.Life == 1 {
			explosions = append(explosions, pending{p.X, p.Y})
		}
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	ps.particles = live

	// Fragments join after the filter so they are not stepped this tick
	for _, e := range explosions {
		ps.Explode(e.x, e.y)
	}
}
