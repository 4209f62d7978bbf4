// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/keymap"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady        State = "ready"
	StateScanning     State = "scanning"
	StateDrawing      State = "drawing"
	StateReading      State = "reading"
	StateRecording    State = "recording"
	StateTranscribing State = "transcribing"
	StateThinking     State = "thinking"
	StateError        State = "error"
)

// Bar displays session state, the mic indicator and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	mode     domain.Mode
	spread   domain.SpreadType
	elapsed  time.Duration
	width    int
	bindings []key.Binding
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session state side of the bar.
func (s *Bar) renderLeft() string {
	prefix := ""
	if s.mode.IsValid() {
		prefix = s.styles.Normal.Render(fmt.Sprintf("%s / %s  ", s.mode, s.spread))
	}

	switch s.state {
	case StateScanning:
		return prefix + s.styles.Muted.Render("Scanning frame...")
	case StateDrawing:
		return prefix + s.styles.Muted.Render("Drawing cards...")
	case StateReading:
		return prefix + s.styles.Muted.Render("Consulting the cards...")
	case StateRecording:
		return prefix + s.styles.Warning.Render(fmt.Sprintf("● REC %.1fs", s.elapsed.Seconds()))
	case StateTranscribing:
		return prefix + s.styles.Muted.Render("Transcribing...")
	case StateThinking:
		return prefix + s.styles.Muted.Render("Thinking...")
	case StateError:
		if s.message != "" {
			return prefix + s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return prefix + s.styles.Error.Render("Error")
	case StateReady:
		if s.message != "" {
			return prefix + s.styles.Normal.Render(s.message)
		}
		return prefix + s.styles.Muted.Render("Ready")
	}
	return prefix + s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.bindings
	if len(bindings) == 0 {
		bindings = []key.Binding{s.keymap.Help, s.keymap.Quit}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// SetSession sets the mode and spread shown on the left.
func (s *Bar) SetSession(mode domain.Mode, spread domain.SpreadType) {
	s.mode = mode
	s.spread = spread
}

// SetElapsed sets the recording duration shown while recording.
func (s *Bar) SetElapsed(elapsed time.Duration) {
	s.elapsed = elapsed
}

// SetBindings sets the hint bindings for the active view.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.elapsed = 0
}
