package audio

import "math"

// NoteFreq returns frequency in Hz for MIDI note number, A4 (69) = 440Hz equal temperament
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= 128 {
		return 0
	}
	return 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
}
