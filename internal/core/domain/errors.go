package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidSpreadType indicates an unrecognised spread layout.
	ErrInvalidSpreadType = errors.New("invalid spread type")

	// ErrSpreadFull indicates a placement into a spread with no empty slot.
	ErrSpreadFull = errors.New("spread is full")

	// ErrInvalidSlot indicates a slot index outside the spread template.
	ErrInvalidSlot = errors.New("invalid slot index")

	// ErrSlotOccupied indicates a placement into an already filled slot.
	ErrSlotOccupied = errors.New("slot already occupied")

	// ErrSlotEmpty indicates an operation requiring a filled slot
	// (clarifying, toggling orientation) hit an empty one.
	ErrSlotEmpty = errors.New("slot is empty")

	// ErrSpreadIncomplete indicates a reading was requested before
	// every slot held a card.
	ErrSpreadIncomplete = errors.New("spread is incomplete")

	// ErrNoReading indicates follow-up conversation was attempted
	// without any reading or session identity.
	ErrNoReading = errors.New("no reading available")

	// Device errors. Never fatal: the subsystem returns to idle.

	// ErrMicUnavailable indicates the platform lacks an audio input
	// device or recording capability.
	ErrMicUnavailable = errors.New("microphone unavailable")

	// ErrPermissionDenied indicates the user declined device access.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrPlaybackUnavailable indicates the platform lacks an audio
	// output channel.
	ErrPlaybackUnavailable = errors.New("audio playback unavailable")
)
