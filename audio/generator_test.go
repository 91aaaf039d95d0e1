package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain pulls a streamer dry and returns the total sample count, failing
// if it exceeds the limit (a runaway streamer would hang the speaker)
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1.0 || buf[i][0] > 1.0 || buf[i][1] < -1.0 || buf[i][1] > 1.0 {
				t.Fatalf("Sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total
		}
		if total > limit {
			t.Fatalf("Streamer exceeded %d samples without finishing", limit)
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(440, 100*time.Millisecond, rate)

	got := drain(t, osc, rate.N(time.Second))
	want := rate.N(100 * time.Millisecond)
	if got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
}

func TestEnvelopeRampsEnds(t *testing.T) {
	rate := beep.SampleRate(48000)
	d := 50 * time.Millisecond
	osc := NewOscillator(1000, d, rate)
	env := NewEnvelope(osc, d, 5*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := env.Stream(buf)
	if n == 0 {
		t.Fatal("Envelope produced no samples")
	}

	// First sample of the attack ramp is fully attenuated
	if buf[0][0] != 0 {
		t.Errorf("Attack must start silent, got %f", buf[0][0])
	}
	// Tail of the release ramp approaches silence
	last := buf[n-1][0]
	if last < -0.01 || last > 0.01 {
		t.Errorf("Release must end near silence, got %f", last)
	}
}

func TestToneRestIsSilence(t *testing.T) {
	rate := beep.SampleRate(48000)
	s := tone(0, 30*time.Millisecond, rate)

	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("Rest produced a non-zero sample at %d: %v", i, buf[i])
		}
	}
}

func TestShowSectionsFinish(t *testing.T) {
	rate := beep.SampleRate(48000)
	rng := rand.New(rand.NewSource(1))

	sections := map[string]beep.Streamer{
		"laser":    LaserSweep(rate),
		"arpeggio": Arpeggio(rate),
		"crackle":  Crackle(rng, rate),
		"fanfare":  Fanfare(rate),
		"finale":   Finale(rng, rate),
	}
	for name, s := range sections {
		if got := drain(t, s, rate.N(time.Second*10)); got == 0 {
			t.Errorf("Section %s produced no samples", name)
		}
	}
}

func TestFullShowFinishes(t *testing.T) {
	rate := beep.SampleRate(48000)
	rng := rand.New(rand.NewSource(2))
	s := Show(rng, rate)
	if got := drain(t, s, rate.N(time.Second*30)); got == 0 {
		t.Error("Show produced no samples")
	}
}
