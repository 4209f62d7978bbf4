// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewModeSelect is the mode and spread selection view.
	ViewModeSelect ViewType = iota
	// ViewBoard is the spread board with the chat panel.
	ViewBoard
	// ViewSettings is the preference configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewModeSelect:
		return "mode_select"
	case ViewBoard:
		return "board"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ModeChosen signals the user committed to a mode and spread.
type ModeChosen struct {
	Mode   domain.Mode
	Spread domain.SpreadType
}

// FrameArrived carries a captured camera frame ready for scanning.
type FrameArrived struct {
	Frame driven.Frame
}

// ScanResolved carries the outcome of resolving a scanned frame.
type ScanResolved struct {
	Outcome *driving.ScanOutcome
	Err     error
}

// DrawCompleted signals an algorithmic draw finished.
type DrawCompleted struct {
	Err error
}

// ChatEventMsg wraps a conversation event for the event loop.
type ChatEventMsg struct {
	Event driving.ChatEvent
}

// VoiceEventMsg wraps a recorder lifecycle event for the event loop.
type VoiceEventMsg struct {
	Event driving.VoiceEvent
}

// VoicesLoaded carries the available synthesis voices.
type VoicesLoaded struct {
	Voices []domain.Voice
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
