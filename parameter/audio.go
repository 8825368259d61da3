package parameter

import "time"

// Audio constants
const (
	AudioSampleRate = 44100
	AudioBufferTime = 100 * time.Millisecond

	// AudioMasterVolume is the linear gain applied to every cue
	AudioMasterVolume = 0.4

	// AudioCueQueueSize bounds pending cues, extra cues are dropped
	AudioCueQueueSize = 16

	// AudioEnvelopeAttack and AudioEnvelopeRelease shape cue edges to avoid clicks
	AudioEnvelopeAttack  = 5 * time.Millisecond
	AudioEnvelopeRelease = 30 * time.Millisecond
)
