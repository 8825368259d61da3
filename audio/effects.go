package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Voice is one enveloped tone whose pitch glides linearly from From to To
// A zero To holds From
type Voice struct {
	Wave     Wave
	From, To float64 // Hz
	Length   time.Duration
	Gain     float64 // linear, 0 = unity
}

// voiceStream renders a Voice sample by sample
type voiceStream struct {
	v       Voice
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	noise   *rand.Rand
}

// NewVoice returns a finite streamer for v with the default edge shaping
func NewVoice(v Voice, rate beep.SampleRate) beep.Streamer {
	return newVoiceStream(v, rate, attack, release)
}

func newVoiceStream(v Voice, rate beep.SampleRate, att, rel time.Duration) *voiceStream {
	total := rate.N(v.Length)
	a, r := rate.N(att), rate.N(rel)
	// Short voices split the length between the edges
	if a+r > total {
		a, r = total/2, total-total/2
	}
	return &voiceStream{
		v:       v,
		rate:    rate,
		total:   total,
		attack:  a,
		release: r,
		noise:   rand.New(rand.NewPCG(uint64(total), uint64(v.Wave))),
	}
}

func (s *voiceStream) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		val := s.sample() * s.gain()
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq() / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *voiceStream) Err() error { return nil }

func (s *voiceStream) freq() float64 {
	to := s.v.To
	if to == 0 || s.total <= 1 {
		return s.v.From
	}
	t := float64(s.pos) / float64(s.total-1)
	return s.v.From + (to-s.v.From)*t
}

func (s *voiceStream) sample() float64 {
	switch s.v.Wave {
	case WaveSquare:
		if s.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(s.phase-0.5)
	case WaveNoise:
		return s.noise.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * s.phase)
	}
}

// gain is the linear attack and release ramp times the voice gain
func (s *voiceStream) gain() float64 {
	g := 1.0
	switch {
	case s.attack > 0 && s.pos < s.attack:
		g = float64(s.pos) / float64(s.attack)
	case s.release > 0 && s.pos >= s.total-s.release:
		g = float64(s.total-s.pos) / float64(s.release)
	}
	if s.v.Gain > 0 {
		g *= s.v.Gain
	}
	return g
}

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain maps to a silent volume
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// seq plays voices back to back
func seq(rate beep.SampleRate, voices ...Voice) beep.Streamer {
	out := make([]beep.Streamer, len(voices))
	for i, v := range voices {
		out[i] = NewVoice(v, rate)
	}
	return beep.Seq(out...)
}

// chord plays voices together
func chord(rate beep.SampleRate, voices ...Voice) beep.Streamer {
	out := make([]beep.Streamer, len(voices))
	for i, v := range voices {
		out[i] = NewVoice(v, rate)
	}
	return beep.Mix(out...)
}
