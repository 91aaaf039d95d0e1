package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Player drives the speaker through a persistent mixer. All playback is
// asynchronous: the speaker runs its own goroutine, callers only enqueue
// streamers, so the frame loop never blocks on audio.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates an inert player; Init attaches it to the device
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device. Failure leaves the player disabled:
// every Play call becomes a no-op and the caller keeps running silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the device. Safe to call when Init
// failed or never ran.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// PlayShow enqueues the full show; a running show keeps playing and the
// new one mixes over it, matching replay-on-demand behavior
func (p *Player) PlayShow(rng *rand.Rand) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Show(rng, sampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayLaunch enqueues a short 880 Hz blip for a manual rocket launch
func (p *Player) PlayLaunch() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	blip := newVolume(beep.Take(sampleRate.N(50*time.Millisecond), sine), 0.35)
	speaker.Lock()
	p.mixer.Add(blip)
	speaker.Unlock()
}
