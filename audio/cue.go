// Package audio synthesizes short cue tones for vehicle events
package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/trickbike/parameter"
)

const (
	attack  = parameter.AudioEnvelopeAttack
	release = parameter.AudioEnvelopeRelease
)

// Cue identifies a synthesized sound
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueLand
	CueCrash
	CueBoost
	CueNitroEmpty
	CueTrick
	CueRespawn
	CueCheckpoint
	cueCount
)

var cueNames = [cueCount]string{"none", "jump", "land", "crash", "boost", "nitro_empty", "trick", "respawn", "checkpoint"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// NewCue returns a finite streamer for c at unity gain, nil for CueNone
func NewCue(c Cue, rate beep.SampleRate) beep.Streamer {
	const ms = time.Millisecond
	switch c {
	case CueJump:
		// Rising whoosh under a short C5-G5 blip
		return chord(rate,
			Voice{Wave: WaveTriangle, From: 180, To: 520, Length: 160 * ms, Gain: 0.7},
			Voice{Wave: WaveSquare, From: NoteFreq(72), To: NoteFreq(79), Length: 90 * ms, Gain: 0.3},
		)
	case CueLand:
		return chord(rate,
			Voice{Wave: WaveSine, From: 130, To: 70, Length: 90 * ms, Gain: 0.8},
			Voice{Wave: WaveNoise, Length: 40 * ms, Gain: 0.3},
		)
	case CueCrash:
		return chord(rate,
			Voice{Wave: WaveNoise, Length: 350 * ms, Gain: 0.7},
			Voice{Wave: WaveTriangle, From: 140, To: 40, Length: 300 * ms, Gain: 0.5},
		)
	case CueBoost:
		return NewVoice(Voice{Wave: WaveSquare, From: 220, To: 440, Length: 150 * ms, Gain: 0.5}, rate)
	case CueNitroEmpty:
		return seq(rate,
			Voice{Wave: WaveSquare, From: 440, Length: 70 * ms},
			Voice{Wave: WaveSquare, From: 330, To: 300, Length: 110 * ms},
		)
	case CueTrick:
		return NewVoice(Voice{Wave: WaveSine, From: NoteFreq(88), To: NoteFreq(91), Length: 50 * ms}, rate)
	case CueRespawn:
		return chord(rate,
			Voice{Wave: WaveSine, From: 660, Length: 200 * ms, Gain: 0.7},
			Voice{Wave: WaveSine, From: 990, Length: 200 * ms, Gain: 0.3},
		)
	case CueCheckpoint:
		return seq(rate,
			Voice{Wave: WaveSquare, From: NoteFreq(83), Length: 80 * ms},
			Voice{Wave: WaveSquare, From: NoteFreq(88), Length: 160 * ms},
		)
	default:
		return nil
	}
}
