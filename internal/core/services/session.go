package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Session implements the driving port.
var _ driving.SessionService = (*Session)(nil)

// Session coordinates acquisition mode, step progression and session
// identity. Mode and camera visibility are updated through independent
// code paths; reconcile is the single place that guarantees they agree,
// rather than trusting every call site.
type Session struct {
	mu sync.Mutex

	mode       domain.Mode
	step       domain.Step
	spreadType domain.SpreadType
	overlayID  domain.OverlayID
	style      domain.ReaderStyle

	cameraVisible bool

	// epoch tags asynchronous work; rotated on every reset so stale
	// completions can be detected and discarded.
	epoch string

	sessionID      string
	readingID      string
	readingContext *domain.ReadingContext

	resetHooks []func()
}

// NewSession creates a session in its boot state.
func NewSession() *Session {
	return &Session{
		mode:       domain.ModePhysical,
		step:       domain.StepModeSelect,
		spreadType: domain.SpreadOneCard,
		style:      domain.StyleSeer,
		epoch:      uuid.NewString(),
	}
}

// Mode returns the active acquisition mode.
func (s *Session) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the acquisition mode. Idempotent: setting the
// current mode changes nothing and fires no hooks. A real switch
// resets the spread via the registered hooks and ends in reconcile.
func (s *Session) SetMode(mode domain.Mode) {
	if !mode.IsValid() {
		logger.Warn("session: ignoring invalid mode %q", mode)
		return
	}

	s.mu.Lock()
	if mode == s.mode {
		s.reconcileLocked()
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.reconcileLocked()
	hooks := append([]func(){}, s.resetHooks...)
	s.mu.Unlock()

	logger.Debug("session: mode -> %s", mode)
	for _, hook := range hooks {
		hook()
	}
}

// Step returns the active session step.
func (s *Session) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SetStep advances the session step. Idempotent; always ends in a
// reconciliation pass.
func (s *Session) SetStep(step domain.Step) {
	if !step.IsValid() {
		logger.Warn("session: ignoring invalid step %q", step)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if step != s.step {
		logger.Debug("session: step %s -> %s", s.step, step)
		s.step = step
	}
	s.reconcileLocked()
}

// SpreadType returns the selected spread layout.
func (s *Session) SpreadType() domain.SpreadType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spreadType
}

// SetSpreadType selects a spread layout.
func (s *Session) SetSpreadType(spread domain.SpreadType) error {
	if !spread.IsValid() {
		return domain.ErrInvalidSpreadType
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spreadType = spread
	return nil
}

// OverlayID returns the selected weather overlay.
func (s *Session) OverlayID() domain.OverlayID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlayID
}

// SetOverlayID selects the weather overlay.
func (s *Session) SetOverlayID(overlay domain.OverlayID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlayID = overlay
}

// Style returns the selected reader style.
func (s *Session) Style() domain.ReaderStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// SetStyle selects the reader style.
func (s *Session) SetStyle(style domain.ReaderStyle) {
	if !style.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// CameraVisible reports whether the camera surface may render.
func (s *Session) CameraVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraVisible
}

// SetCameraVisible updates camera surface visibility, then reconciles.
func (s *Session) SetCameraVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraVisible = visible
	s.reconcileLocked()
}

// reconcileLocked enforces the invariant: if mode is digital, the
// camera surface must not be visible. A conflict is corrected before
// returning and reported as a non-fatal invariant violation.
func (s *Session) reconcileLocked() {
	if s.mode == domain.ModeDigital && s.cameraVisible {
		s.cameraVisible = false
		logger.Invariant("camera surface visible in digital mode; hidden")
	}
}

// Epoch returns the current session epoch.
func (s *Session) Epoch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// SessionID returns the server-issued legacy session token.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// ReadingID returns the server-issued reading token.
func (s *Session) ReadingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readingID
}

// SetReadingID records the reading token for the current session.
func (s *Session) SetReadingID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readingID = id
}

// ReadingContext returns the follow-up context, nil until a reading exists.
func (s *Session) ReadingContext() *domain.ReadingContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readingContext
}

// SetReading records the correlation tokens and follow-up context
// produced by a generated reading.
func (s *Session) SetReading(sessionID, readingID string, reading *domain.ReadingContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
	if readingID != "" {
		s.readingID = readingID
	}
	s.readingContext = reading
}

// Reset starts a fresh session. Identity is cleared, the epoch rotated
// so in-flight completions become stale, and the reset hooks fire.
func (s *Session) Reset() {
	s.mu.Lock()
	s.step = domain.StepModeSelect
	s.sessionID = ""
	s.readingID = ""
	s.readingContext = nil
	s.epoch = uuid.NewString()
	s.reconcileLocked()
	hooks := append([]func(){}, s.resetHooks...)
	s.mu.Unlock()

	logger.Debug("session: reset, new epoch")
	for _, hook := range hooks {
		hook()
	}
}

// OnReset registers a hook invoked on Reset and on mode change.
func (s *Session) OnReset(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetHooks = append(s.resetHooks, hook)
}
