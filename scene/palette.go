package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/skyburst/render"
)

// burstHues are the firework base hues in degrees: red, orange, gold,
// green, cyan, azure, violet, magenta
var burstHues = []float64{0, 30, 52, 120, 185, 210, 275, 320}

// channel jitter applied to each cohort base color
const burstJitter = 25

// pickBurstColor samples one vibrant cohort color: a saturated HSV hue from
// the palette, then per-channel jitter so consecutive bursts of the same hue
// still differ
func (ps *ParticleSystem) pickBurstColor() render.RGB {
	hue := burstHues[ps.rng.Intn(len(burstHues))]
	r, g, b := colorful.Hsv(hue, 0.88, 1.0).RGB255()
	return render.RGB{
		R: ps.jitterChannel(r),
		G: ps.jitterChannel(g),
		B: ps.jitterChannel(b),
	}
}

// jitterChannel offsets a channel by U(-burstJitter, burstJitter), clamped
func (ps *ParticleSystem) jitterChannel(v uint8) uint8 {
	j := int(v) + ps.rng.Intn(2*burstJitter+1) - burstJitter
	if j < 0 {
		j = 0
	}
	if j > 255 {
		j = 255
	}
	return uint8(j)
}
