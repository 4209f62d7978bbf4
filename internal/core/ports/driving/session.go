package driving

import (
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// SessionService coordinates acquisition mode, step progression and
// session identity. SetMode and SetStep are the only mutators of their
// respective fields; both are idempotent and end in a reconciliation
// pass that enforces the mode/camera-visibility invariant.
type SessionService interface {
	// Mode returns the active acquisition mode.
	Mode() domain.Mode

	// SetMode switches the acquisition mode. Switching to a different
	// mode resets the spread via the registered reset hooks.
	SetMode(mode domain.Mode)

	// Step returns the active session step.
	Step() domain.Step

	// SetStep advances (or rewinds) the session step.
	SetStep(step domain.Step)

	// SpreadType returns the selected spread layout.
	SpreadType() domain.SpreadType

	// SetSpreadType selects a spread layout.
	// Fails with domain.ErrInvalidSpreadType if unrecognised.
	SetSpreadType(spread domain.SpreadType) error

	// OverlayID returns the selected weather overlay, if any.
	OverlayID() domain.OverlayID

	// SetOverlayID selects the weather overlay.
	SetOverlayID(overlay domain.OverlayID)

	// Style returns the selected reader style.
	Style() domain.ReaderStyle

	// SetStyle selects the reader style.
	SetStyle(style domain.ReaderStyle)

	// CameraVisible reports whether the camera surface may render.
	CameraVisible() bool

	// SetCameraVisible updates camera surface visibility. The value is
	// reconciled against the mode invariant before taking effect.
	SetCameraVisible(visible bool)

	// Epoch returns the current session epoch. Asynchronous completions
	// tagged with a stale epoch must be discarded.
	Epoch() string

	// SessionID returns the server-issued legacy session token, empty
	// until a reading exists.
	SessionID() string

	// ReadingID returns the server-issued reading token, empty until
	// an algorithmic reading was started or a reading generated.
	ReadingID() string

	// SetReadingID records the reading token for the current session.
	SetReadingID(id string)

	// ReadingContext returns the follow-up context, nil until a
	// reading exists.
	ReadingContext() *domain.ReadingContext

	// SetReading records the server correlation tokens and follow-up
	// context produced by a generated reading.
	SetReading(sessionID, readingID string, reading *domain.ReadingContext)

	// Reset starts a fresh session: identity cleared, epoch rotated,
	// step back to mode selection, reset hooks invoked.
	Reset()

	// OnReset registers a hook invoked on Reset and on mode change.
	OnReset(hook func())
}
