package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/lixenwraith/skyburst/render"
	"github.com/lixenwraith/skyburst/scene"
)

// framePeriod is the 60 FPS frame budget
const framePeriod = time.Second / 60

// KeySource yields at most one key per poll without blocking
type KeySource interface {
	PollKey() (rune, bool)
}

// SizeSource yields the current terminal dimensions without blocking
type SizeSource interface {
	Size() (width, height int)
}

// Output receives one frame of draw instructions and commits it atomically
type Output interface {
	render.Sink
	Flush()
}

// State is the loop lifecycle: Running → Stopping → Stopped
type State uint8

const (
	Running State = iota
	Stopping
	Stopped
)

// Config carries loop construction parameters
type Config struct {
	Title    string
	Subtitle string

	// Seed for the simulation random source; 0 uses the wall clock
	Seed int64

	// StarCount overrides the area-derived star count when positive
	StarCount int

	// OnShow replays the audio show; nil disables the 's' key
	OnShow func()

	// OnLaunch fires on each manual rocket spawn; nil disables
	OnLaunch func()

	// OnCleanup runs exactly once when the loop reaches Stopped
	OnCleanup func()
}

// Loop owns the frame-pacing clock, input polling, simulation, and render
// emission for the lifetime of one run. Everything it owns is mutated only
// on the loop goroutine; Stop is the single cross-thread entry point.
type Loop struct {
	keys KeySource
	size SizeSource
	out  Output

	rng       *rand.Rand
	fb        *render.FrameBuffer
	stars     *scene.StarField
	particles *scene.ParticleSystem
	composer  *scene.Composer

	cfg         Config
	state       State
	stopReq     atomic.Bool
	cleanupOnce sync.Once

	lastW, lastH   int
	pendingRockets int
	nextAutoFire   float64

	fps       float64
	fpsFrames int
	fpsSince  time.Time
}

// New builds a loop around the injected collaborators. The initial buffer
// and starfield are sized from the size source; a failed query falls back
// to the render floor via FrameBuffer's clamping.
func New(keys KeySource, size SizeSource, out Output, cfg Config) *Loop {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w, h := size.Size()
	fb := render.NewFrameBuffer(w, h)

	l := &Loop{
		keys:      keys,
		size:      size,
		out:       out,
		rng:       rng,
		fb:        fb,
		particles: scene.NewParticleSystem(rng),
		composer:  scene.NewComposer(rng, cfg.Title, cfg.Subtitle),
		cfg:       cfg,
		state:     Running,
		lastW:     fb.Width(),
		lastH:     fb.Height(),
	}
	l.stars = scene.NewStarField(rng, l.starCount(), fb.Width(), fb.Height())
	l.nextAutoFire = 0.6 + rng.Float64()
	return l
}

// State returns the current lifecycle state
func (l *Loop) State() State {
	return l.state
}

// Stop requests shutdown from another goroutine (signal handler).
// The quit condition is checked once per frame; there is no mid-frame
// preemption.
func (l *Loop) Stop() {
	l.stopReq.Store(true)
}

// HandleKey applies one key press to the state machine. Quit is
// case-insensitive; space queues a manual rocket; 's' replays the show.
func (l *Loop) HandleKey(r rune) {
	switch unicode.ToLower(r) {
	case 'q':
		if l.state == Running {
			l.state = Stopping
		}
	case ' ':
		l.pendingRockets++
		if l.cfg.OnLaunch != nil {
			l.cfg.OnLaunch()
		}
	case 's':
		if l.cfg.OnShow != nil {
			l.cfg.OnShow()
		}
	}
}

// Run drives the loop until a quit key or Stop call, then releases
// resources via OnCleanup on every exit path
func (l *Loop) Run() {
	defer l.finish()

	start := time.Now()
	l.fpsSince = start
	frame := 0

	for l.state == Running {
		frameStart := time.Now()
		t := frameStart.Sub(start).Seconds()

		l.pollInput()
		if l.stopReq.Load() && l.state == Running {
			l.state = Stopping
		}
		if l.state != Running {
			return
		}

		l.syncSize()
		l.autoFire(t)
		for ; l.pendingRockets > 0; l.pendingRockets-- {
			l.particles.SpawnRocket(l.fb.Width(), l.fb.Height())
		}

		l.composer.Frame(l.fb, l.stars, l.particles, t, frame, l.fps)
		l.fb.Render(l.out)
		l.out.Flush()
		frame++
		l.updateFPS(frameStart)

		if elapsed := time.Since(frameStart); elapsed < framePeriod {
			time.Sleep(framePeriod - elapsed)
		}
	}
}

// finish transitions to Stopped and runs cleanup exactly once
func (l *Loop) finish() {
	if l.state == Running {
		l.state = Stopping
	}
	l.cleanupOnce.Do(func() {
		if l.cfg.OnCleanup != nil {
			l.cfg.OnCleanup()
		}
	})
	l.state = Stopped
}

// pollInput drains every key available this frame
func (l *Loop) pollInput() {
	for {
		r, ok := l.keys.PollKey()
		if !ok {
			return
		}
		l.HandleKey(r)
		if l.state != Running {
			return
		}
	}
}

// starCount derives the starfield density from the buffer area
func (l *Loop) starCount() int {
	if l.cfg.StarCount > 0 {
		return l.cfg.StarCount
	}
	count := l.fb.Width() * l.fb.Height() / 35
	if count < 80 {
		count = 80
	}
	return count
}

// syncSize resizes the buffer and reseeds the starfield when the terminal
// dimensions change. A failed query (non-positive size) keeps the previous
// known size.
func (l *Loop) syncSize() {
	w, h := l.size.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if w == l.lastW && h == l.lastH {
		return
	}
	l.lastW, l.lastH = w, h
	l.fb.Resize(w, h)
	l.stars = scene.NewStarField(l.rng, l.starCount(), l.fb.Width(), l.fb.Height())
}

// autoFire advances the automatic launch schedule: past the threshold,
// spawn with 55% probability and reschedule either way
func (l *Loop) autoFire(t float64) {
	if t < l.nextAutoFire {
		return
	}
	if l.rng.Float64() < 0.55 {
		l.particles.SpawnRocket(l.fb.Width(), l.fb.Height())
	}
	l.nextAutoFire = t + 0.6 + l.rng.Float64()
}

// updateFPS folds the finished frame into a half-second moving estimate
func (l *Loop) updateFPS(frameStart time.Time) {
	l.fpsFrames++
	window := frameStart.Sub(l.fpsSince).Seconds()
	if window >= 0.5 {
		l.fps = float64(l.fpsFrames) / window
		l.fpsFrames = 0
		l.fpsSince = frameStart
	}
}
