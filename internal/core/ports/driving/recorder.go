package driving

import (
	"context"
	"time"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// VoiceEventKind classifies recorder lifecycle events.
type VoiceEventKind int

const (
	// VoiceStarted fires when recording begins.
	VoiceStarted VoiceEventKind = iota

	// VoiceTick carries the elapsed recording time for display.
	VoiceTick

	// VoiceTranscribing fires when recording stopped and the buffered
	// audio was submitted for transcription.
	VoiceTranscribing

	// VoiceTranscript carries a non-empty transcript.
	VoiceTranscript

	// VoiceNoSpeech fires when transcription produced no usable text.
	VoiceNoSpeech

	// VoiceError carries a capture or transcription failure. The
	// subsystem has already returned to idle.
	VoiceError
)

// VoiceEvent is one recorder lifecycle notification.
type VoiceEvent struct {
	// Kind classifies the event.
	Kind VoiceEventKind

	// Epoch is the session epoch the recording belongs to.
	Epoch string

	// Elapsed is the recording duration so far (VoiceTick).
	Elapsed time.Duration

	// Transcript is the transcribed text (VoiceTranscript).
	Transcript string

	// AutoSend is true when the auto-send preference asks for the
	// transcript to be sent immediately rather than pre-filled.
	AutoSend bool

	// Err is the failure (VoiceError).
	Err error
}

// RecorderService manages the microphone capture lifecycle:
// idle -> recording -> transcribing -> idle, with an error edge from any
// state back to idle that always runs a full teardown.
type RecorderService interface {
	// Start begins recording. A no-op while recording or transcribing.
	// Device acquisition failures surface as domain.ErrMicUnavailable
	// or domain.ErrPermissionDenied.
	Start(ctx context.Context) error

	// Stop ends recording immediately, bypassing the silence
	// thresholds. A no-op unless recording.
	Stop()

	// Phase returns the current capture phase.
	Phase() domain.MicPhase

	// Events returns the recorder's lifecycle event channel.
	Events() <-chan VoiceEvent
}
