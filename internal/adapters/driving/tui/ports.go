// Package tui provides the interactive terminal user interface.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// Ports aggregates all interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the mode/step state machine.
	Session driving.SessionService

	// Spread manages the spread board.
	Spread driving.SpreadService

	// Acquire resolves scanned and drawn cards.
	Acquire driving.AcquisitionService

	// Recorder manages voice capture. Optional; nil disables the mic.
	Recorder driving.RecorderService

	// Conversation manages the reading and the chat panel.
	Conversation driving.ConversationService

	// Frames delivers camera frames in physical mode. Optional.
	Frames driven.FrameSource

	// Voice lists synthesis voices for settings. Optional.
	Voice driven.VoiceAPI

	// Prefs persists user preferences. Optional.
	Prefs driven.PrefStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Spread == nil {
		return ErrMissingSpreadService
	}
	if p.Acquire == nil {
		return ErrMissingAcquisitionService
	}
	if p.Conversation == nil {
		return ErrMissingConversationService
	}
	return nil
}
