package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// noteNames maps a pitch-class name to its semitone offset from C
var noteNames = map[string]int{
	"C": 0, "C#": 1, "DB": 1, "D": 2, "D#": 3, "EB": 3, "E": 4,
	"F": 5, "F#": 6, "GB": 6, "G": 7, "G#": 8, "AB": 8, "A": 9,
	"A#": 10, "BB": 10, "B": 11,
}

// NoteFreq converts a note name such as "C4", "D#5", or "A3" to its equal
// temperament frequency in Hz (A4 = 440). "R" is a rest and returns 0.
func NoteFreq(note string) (float64, error) {
	note = strings.ToUpper(strings.TrimSpace(note))
	if note == "R" {
		return 0, nil
	}
	if len(note) < 2 {
		return 0, fmt.Errorf("audio: bad note %q", note)
	}

	var key string
	var octavePart string
	if note[1] == '#' || note[1] == 'B' {
		key = note[:2]
		octavePart = note[2:]
	} else {
		key = note[:1]
		octavePart = note[1:]
	}

	semitone, ok := noteNames[key]
	if !ok {
		return 0, fmt.Errorf("audio: bad note %q", note)
	}
	octave, err := strconv.Atoi(octavePart)
	if err != nil {
		return 0, fmt.Errorf("audio: bad note %q", note)
	}

	// MIDI numbering: C4 = 60, A4 = 69
	midi := (octave+1)*12 + semitone
	return 440.0 * math.Pow(2, float64(midi-69)/12.0), nil
}

// mustNote resolves a note name for the built-in show sequences, which are
// all statically valid
func mustNote(note string) float64 {
	f, err := NoteFreq(note)
	if err != nil {
		panic(err)
	}
	return f
}
