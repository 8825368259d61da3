package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

// Player mixes cues triggered by vehicle and respawn events
// Until Initialize succeeds cues are mixed offline and can be pulled with Stream
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	live   bool
	logger zerolog.Logger

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a player at the given master volume
func NewPlayer(volume float64, logger zerolog.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: volume,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker and starts playback
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferTime)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.live = true
	return nil
}

// Cleanup stops playback and clears pending cues
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.live = false
}

// ToggleMute flips the mute state and returns the new value
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (p *Player) SetMuted(m bool) { p.muted.Store(m) }

func (p *Player) Muted() bool { return p.muted.Load() }

// Play schedules a cue; cues past the concurrency cap are dropped
func (p *Player) Play(c Cue) {
	if p.muted.Load() {
		return
	}
	s := NewCue(c, p.rate)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if p.mixer.Len() >= parameter.AudioCueQueueSize {
		p.dropped.Add(1)
		p.logger.Debug().Str("cue", c.String()).Msg("Cue dropped")
		return
	}
	p.mixer.Add(newVolume(s, p.volume))
	p.played.Add(1)
}

// Stream pulls mixed samples when the speaker is not running
func (p *Player) Stream(samples [][2]float64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		return 0
	}
	n, _ := p.mixer.Stream(samples)
	return n
}

// Active returns the number of cues still sounding
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

func (p *Player) Played() uint64  { return p.played.Load() }
func (p *Player) Dropped() uint64 { return p.dropped.Load() }

// CueFor maps a vehicle event to its cue
func CueFor(t vehicle.EventType) Cue {
	switch t {
	case vehicle.EventJump:
		return CueJump
	case vehicle.EventLand:
		return CueLand
	case vehicle.EventCrash:
		return CueCrash
	case vehicle.EventBoostStart:
		return CueBoost
	case vehicle.EventNitroEmpty:
		return CueNitroEmpty
	case vehicle.EventTrickStart:
		return CueTrick
	}
	return CueNone
}

// OnVehicleEvent implements vehicle.Observer
func (p *Player) OnVehicleEvent(ev vehicle.Event) {
	if c := CueFor(ev.Type); c != CueNone {
		p.Play(c)
	}
}

// OnCheckpoint implements respawn.Listener, only trigger checkpoints are audible
func (p *Player) OnCheckpoint(cp respawn.Checkpoint) {
	if cp.Source == respawn.SourceTrigger {
		p.Play(CueCheckpoint)
	}
}

// OnRespawn implements respawn.Listener
func (p *Player) OnRespawn(_ respawn.Checkpoint) {
	p.Play(CueRespawn)
}

var (
	_ vehicle.Observer = (*Player)(nil)
	_ respawn.Listener = (*Player)(nil)
)
