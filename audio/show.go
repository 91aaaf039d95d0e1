package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// tone builds one enveloped sine tone; a non-positive frequency is a rest
func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	if freq <= 0 {
		return beep.Silence(rate.N(d))
	}
	osc := NewOscillator(freq, d, rate)
	shaped := NewEnvelope(osc, d, 2*time.Millisecond, 6*time.Millisecond, rate)
	return newVolume(shaped, 0.5)
}

// step is one show entry: a frequency held for a duration
type step struct {
	freq float64
	ms   int
}

// seqTones chains steps into a single streamer
func seqTones(steps []step, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, len(steps))
	for i, s := range steps {
		parts[i] = tone(s.freq, time.Duration(s.ms)*time.Millisecond, rate)
	}
	return beep.Seq(parts...)
}

// LaserSweep rises fast then falls back: the show opener
func LaserSweep(rate beep.SampleRate) beep.Streamer {
	steps := make([]step, 0, 30)
	for i := 0; i < 18; i++ {
		steps = append(steps, step{float64(600 + i*140), 18})
	}
	for i := 0; i < 12; i++ {
		steps = append(steps, step{float64(3200 - i*170), 16})
	}
	return seqTones(steps, rate)
}

// Arpeggio plays a short cinematic run
func Arpeggio(rate beep.SampleRate) beep.Streamer {
	seq := []struct {
		note string
		ms   int
	}{
		{"E4", 110}, {"G4", 110}, {"B4", 110}, {"E5", 180},
		{"D5", 90}, {"B4", 90}, {"G4", 120}, {"B4", 140},
		{"C5", 160}, {"G4", 90}, {"E4", 180},
	}
	steps := make([]step, len(seq))
	for i, s := range seq {
		steps[i] = step{mustNote(s.note), s.ms}
	}
	return seqTones(steps, rate)
}

// Crackle approximates an explosion with grainy random beeps sliding down
func Crackle(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	steps := make([]step, 28)
	for i := range steps {
		f := float64(80+rng.Intn(721)) + float64((28-i)*25)
		steps[i] = step{f, 12}
	}
	return seqTones(steps, rate)
}

// Fanfare plays the short brass figure with rests
func Fanfare(rate beep.SampleRate) beep.Streamer {
	seq := []struct {
		note string
		ms   int
	}{
		{"C4", 120}, {"E4", 120}, {"G4", 120}, {"C5", 220},
		{"R", 70},
		{"A4", 120}, {"B4", 120}, {"C5", 220},
		{"R", 70},
		{"G4", 120}, {"E4", 120}, {"C4", 260},
	}
	steps := make([]step, len(seq))
	for i, s := range seq {
		steps[i] = step{mustNote(s.note), s.ms}
	}
	return seqTones(steps, rate)
}

// Finale climbs with a wobble then sparkles at the top
func Finale(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	steps := make([]step, 0, 36)
	for i := 0; i < 22; i++ {
		f := 240 + float64(i)*95 + 40*math.Sin(float64(i)*0.9)
		steps = append(steps, step{f, 22})
	}
	for i := 0; i < 14; i++ {
		steps = append(steps, step{float64(1200 + rng.Intn(2001)), 18})
	}
	return seqTones(steps, rate)
}

// Show chains every section in performance order
func Show(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		LaserSweep(rate),
		Arpeggio(rate),
		Crackle(rng, rate),
		Fanfare(rate),
		Finale(rng, rate),
	)
}
