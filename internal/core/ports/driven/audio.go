package driven

import (
	"context"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// AudioInput is an open microphone capture stream producing PCM16
// little-endian mono samples.
type AudioInput interface {
	// Read returns the audio captured since the previous call.
	// An empty slice with a nil error means no new audio yet.
	Read(ctx context.Context) ([]byte, error)

	// SampleRate returns the capture sample rate in Hz.
	SampleRate() int

	// Close releases the underlying device. It is idempotent.
	Close() error
}

// AudioInputFactory acquires audio input devices.
// Open fails with domain.ErrMicUnavailable when the platform lacks a
// device or recording capability, and domain.ErrPermissionDenied when
// the user declines access.
type AudioInputFactory interface {
	Open(ctx context.Context) (AudioInput, error)
}

// AudioPlayer plays a synthesized audio payload.
// Play blocks until playback finishes or the context is cancelled.
// The output channel is singly-owned for the call's duration.
type AudioPlayer interface {
	Play(ctx context.Context, audio []byte) error
}

// Haptics delivers placement feedback. Implementations that cannot
// produce feedback should no-op rather than fail.
type Haptics interface {
	Pulse(level domain.HapticLevel)
}
