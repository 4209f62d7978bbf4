package domain

import "time"

// MicPhase is the voice capture lifecycle state.
type MicPhase string

// Microphone capture phases.
const (
	// MicIdle means no capture is in progress.
	MicIdle MicPhase = "idle"

	// MicRecording means the input device is open and sampling.
	MicRecording MicPhase = "recording"

	// MicTranscribing means the buffered audio is being transcribed.
	MicTranscribing MicPhase = "transcribing"
)

// IsValid returns true if the phase is recognised.
func (p MicPhase) IsValid() bool {
	switch p {
	case MicIdle, MicRecording, MicTranscribing:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p MicPhase) String() string {
	return string(p)
}

// VoiceTuning holds the silence-detection policy parameters.
// The two-threshold policy avoids stopping on a brief pause at the very
// start of speech while still ending promptly once the user finishes.
// The values are tuned constants carried as configuration.
type VoiceTuning struct {
	// DisplayTick is the cadence of elapsed-time UI updates.
	DisplayTick time.Duration

	// SilenceTick is the cadence of the silence-detection sampling loop.
	SilenceTick time.Duration

	// SilenceRMS is the normalised RMS energy below which a sampling
	// window counts as silent.
	SilenceRMS float64

	// MinRecording is the minimum elapsed recording time before
	// silence may trigger an automatic stop.
	MinRecording time.Duration

	// SilenceStop is the accumulated silence required to stop.
	SilenceStop time.Duration
}

// DefaultVoiceTuning returns the stock silence policy.
func DefaultVoiceTuning() VoiceTuning {
	return VoiceTuning{
		DisplayTick:  250 * time.Millisecond,
		SilenceTick:  200 * time.Millisecond,
		SilenceRMS:   0.012,
		MinRecording: 700 * time.Millisecond,
		SilenceStop:  1200 * time.Millisecond,
	}
}
