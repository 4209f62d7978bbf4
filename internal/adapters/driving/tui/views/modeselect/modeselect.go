// Package modeselect provides the mode and spread selection view.
package modeselect

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// Stage tracks which selection list is active.
type Stage int

const (
	// StageMode picks the acquisition mode.
	StageMode Stage = iota

	// StageSpread picks the spread layout.
	StageSpread
)

// View is the two-stage mode and spread picker shown at session start.
type View struct {
	styles   *styles.Styles
	stage    Stage
	mode     domain.Mode
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a mode selection view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		stage:  StageMode,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the mode selection view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < v.itemCount()-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v.confirm()

		case "esc":
			if v.stage == StageSpread {
				v.stage = StageMode
				v.selected = 0
			}
			return v, nil

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// confirm advances through mode then spread, emitting ModeChosen at the end.
func (v *View) confirm() (*View, tea.Cmd) {
	switch v.stage {
	case StageMode:
		modes := []domain.Mode{domain.ModePhysical, domain.ModeDigital}
		v.mode = modes[v.selected]
		v.stage = StageSpread
		v.selected = 0
		return v, nil

	case StageSpread:
		spread := domain.SpreadTypes()[v.selected]
		mode := v.mode
		return v, func() tea.Msg {
			return messages.ModeChosen{Mode: mode, Spread: spread}
		}
	}
	return v, nil
}

func (v *View) itemCount() int {
	if v.stage == StageMode {
		return 2
	}
	return len(domain.SpreadTypes())
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Tarot42"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("A reading at your terminal"))
	b.WriteString("\n\n")

	switch v.stage {
	case StageMode:
		b.WriteString(v.styles.Subtitle.Render("How will cards enter the spread?"))
		b.WriteString("\n\n")
		for i, mode := range []domain.Mode{domain.ModePhysical, domain.ModeDigital} {
			b.WriteString(v.renderItem(i, mode.Description()))
		}
	case StageSpread:
		b.WriteString(v.styles.Subtitle.Render("Choose a spread"))
		b.WriteString("\n\n")
		for i, spread := range domain.SpreadTypes() {
			b.WriteString(v.renderItem(i, spread.Description()))
		}
	}

	b.WriteString("\n")
	footer := "[j/k] Navigate  [Enter] Select  [q] Quit"
	if v.stage == StageSpread {
		footer = "[j/k] Navigate  [Enter] Select  [Esc] Back  [q] Quit"
	}
	b.WriteString(v.styles.Help.Render(footer))

	return b.String()
}

func (v *View) renderItem(i int, label string) string {
	if i == v.selected {
		return "> " + v.styles.Selected.Render(label) + "\n"
	}
	return "  " + v.styles.Normal.Render(label) + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns the picker to the mode stage.
func (v *View) Reset() {
	v.stage = StageMode
	v.selected = 0
}

// Stage returns the active selection stage.
func (v *View) Stage() Stage {
	return v.stage
}

// Selected returns the cursor index within the active stage.
func (v *View) Selected() int {
	return v.selected
}
