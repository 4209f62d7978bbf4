// Package settings provides the preference configuration view.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionStyle
	SectionOverlay
	SectionVoice
)

// View is the settings configuration view.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	prefs   driven.PrefStore
	voice   driven.VoiceAPI

	ctx context.Context

	// voices is the synthesis voice list, loaded lazily.
	voices    []domain.Voice
	voicesErr error

	section  Section
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a settings view. prefs and voice may be nil; the
// affected rows degrade to session-only state.
func NewView(
	s *styles.Styles,
	session driving.SessionService,
	prefs driven.PrefStore,
	voice driven.VoiceAPI,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		session: session,
		prefs:   prefs,
		voice:   voice,
		ctx:     context.Background(),
		section: SectionOverview,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the voice list.
func (v *View) Init() tea.Cmd {
	return v.loadVoices()
}

// loadVoices returns a command that fetches the synthesis voices.
func (v *View) loadVoices() tea.Cmd {
	if v.voice == nil || v.voices != nil {
		return nil
	}
	ctx := v.ctx
	return func() tea.Msg {
		voices, err := v.voice.Voices(ctx)
		return messages.VoicesLoaded{Voices: voices, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.VoicesLoaded:
		v.voices = msg.Voices
		v.voicesErr = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBoard}
			}
		}
		v.section = SectionOverview
		v.selected = 0
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionStyle:
		return v.handleStyleKeys(msg)
	case SectionOverlay:
		return v.handleOverlayKeys(msg)
	case SectionVoice:
		return v.handleVoiceKeys(msg)
	}
	return v, nil
}

// overviewRows is the fixed overview layout: three pick-lists followed
// by two toggles.
const (
	rowStyle = iota
	rowOverlay
	rowVoice
	rowAutoSend
	rowAutoSpeak
	rowCount
)

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < rowCount-1 {
			v.selected++
		}
	case "enter", " ":
		switch v.selected {
		case rowStyle:
			v.section = SectionStyle
			v.selected = v.styleIndex()
		case rowOverlay:
			v.section = SectionOverlay
			v.selected = v.overlayIndex()
		case rowVoice:
			v.section = SectionVoice
			v.selected = v.voiceIndex()
		case rowAutoSend:
			return v, v.toggle(driven.PrefAutoSend)
		case rowAutoSpeak:
			return v, v.toggle(driven.PrefAutoSpeakChat)
		}
	}
	return v, nil
}

func (v *View) handleStyleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	stylesList := domain.ReaderStyles()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(stylesList)-1 {
			v.selected++
		}
	case "enter":
		style := stylesList[v.selected]
		v.session.SetStyle(style)
		cmd := v.persist(driven.PrefReaderStyle, style.String())
		v.backToOverview(rowStyle)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleOverlayKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Index 0 is "None"; overlays follow.
	overlays := domain.Overlays()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(overlays) {
			v.selected++
		}
	case "enter":
		var overlay domain.OverlayID
		if v.selected > 0 {
			overlay = overlays[v.selected-1]
		}
		v.session.SetOverlayID(overlay)
		cmd := v.persist(driven.PrefOverlayID, overlay.String())
		v.backToOverview(rowOverlay)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleVoiceKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.voices)-1 {
			v.selected++
		}
	case "enter":
		if v.selected >= 0 && v.selected < len(v.voices) {
			cmd := v.persist(driven.PrefVoice, v.voices[v.selected].ID)
			v.backToOverview(rowVoice)
			return v, cmd
		}
	}
	return v, nil
}

func (v *View) backToOverview(row int) {
	v.section = SectionOverview
	v.selected = row
}

func (v *View) toggle(key string) tea.Cmd {
	if v.prefs == nil {
		return nil
	}
	return v.reportSetErr(key, v.prefs.Set(key, !v.prefs.GetBool(key)))
}

func (v *View) persist(key, value string) tea.Cmd {
	if v.prefs == nil {
		return nil
	}
	return v.reportSetErr(key, v.prefs.Set(key, value))
}

func (v *View) reportSetErr(key string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: fmt.Errorf("saving %s: %w", key, err)}
	}
}

func (v *View) styleIndex() int {
	for i, s := range domain.ReaderStyles() {
		if s == v.session.Style() {
			return i
		}
	}
	return 0
}

func (v *View) overlayIndex() int {
	current := v.session.OverlayID()
	for i, o := range domain.Overlays() {
		if o == current {
			return i + 1
		}
	}
	return 0
}

func (v *View) voiceIndex() int {
	if v.prefs == nil {
		return 0
	}
	current := v.prefs.GetString(driven.PrefVoice)
	for i, voice := range v.voices {
		if voice.ID == current {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionStyle:
		b.WriteString(v.renderStyleSelect())
	case SectionOverlay:
		b.WriteString(v.renderOverlaySelect())
	case SectionVoice:
		b.WriteString(v.renderVoiceSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back"))

	return b.String()
}

func (v *View) renderOverview() string {
	overlayValue := "None"
	if overlay := v.session.OverlayID(); overlay.IsValid() {
		overlayValue = overlay.String()
	}

	voiceValue := "Default"
	autoSend, autoSpeak := false, false
	if v.prefs != nil {
		if voice := v.prefs.GetString(driven.PrefVoice); voice != "" {
			voiceValue = voice
		}
		autoSend = v.prefs.GetBool(driven.PrefAutoSend)
		autoSpeak = v.prefs.GetBool(driven.PrefAutoSpeakChat)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Reader Style", v.session.Style().Description()},
		{"Weather Overlay", overlayValue},
		{"Voice", voiceValue},
		{"Auto-send transcript", onOff(autoSend)},
		{"Speak replies aloud", onOff(autoSpeak)},
	}

	var b strings.Builder
	for i, row := range rows {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, row.label, row.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderStyleSelect() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Reader Style"))
	b.WriteString("\n\n")

	for i, style := range domain.ReaderStyles() {
		b.WriteString(v.renderPick(i, style.Description(), style == v.session.Style()))
	}
	return b.String()
}

func (v *View) renderOverlaySelect() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Weather Overlay"))
	b.WriteString("\n\n")

	current := v.session.OverlayID()
	b.WriteString(v.renderPick(0, "None", !current.IsValid()))
	for i, overlay := range domain.Overlays() {
		b.WriteString(v.renderPick(i+1, overlay.String(), overlay == current))
	}
	return b.String()
}

func (v *View) renderVoiceSelect() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Voice"))
	b.WriteString("\n\n")

	if v.voicesErr != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Could not load voices: %v", v.voicesErr)))
		b.WriteString("\n")
		return b.String()
	}
	if len(v.voices) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading voices..."))
		b.WriteString("\n")
		return b.String()
	}

	current := ""
	if v.prefs != nil {
		current = v.prefs.GetString(driven.PrefVoice)
	}
	for i, voice := range v.voices {
		label := voice.Name
		if voice.Description != "" {
			label = fmt.Sprintf("%s (%s)", voice.Name, voice.Description)
		}
		b.WriteString(v.renderPick(i, label, voice.ID == current))
	}
	return b.String()
}

func (v *View) renderPick(i int, label string, current bool) string {
	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}
	suffix := ""
	if current {
		suffix = v.styles.Success.Render(" (current)")
	}

	line := indicator + label
	if i == v.selected {
		return v.styles.Selected.Render(line) + suffix + "\n"
	}
	return v.styles.Normal.Render(line) + suffix + "\n"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns the view to the overview section.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}
