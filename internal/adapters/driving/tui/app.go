package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/components/status"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/keymap"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/views/board"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/views/chat"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/views/modeselect"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/views/settings"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// modeSelectView is the mode/spread picker.
	modeSelectView *modeselect.View

	// boardView is the spread board.
	boardView *board.View

	// chatView is the conversation panel.
	chatView *chat.View

	// settingsView is the preference configuration view.
	settingsView *settings.View

	// statusBar is the persistent bottom bar.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ctx := context.Background()

	app := &App{
		ports:          ports,
		ctx:            ctx,
		styles:         s,
		keymap:         km,
		modeSelectView: modeselect.NewView(s),
		boardView:      board.NewView(s, km, ports.Session, ports.Spread, ports.Acquire, ports.Conversation).WithContext(ctx),
		chatView:       chat.NewView(s, km, ports.Conversation, ports.Recorder).WithContext(ctx),
		settingsView:   settings.NewView(s, ports.Session, ports.Prefs, ports.Voice).WithContext(ctx),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewModeSelect,
	}
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.boardView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	a.settingsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("tarot42"),
		a.waitForChatEvent(),
	}
	if a.ports.Recorder != nil {
		cmds = append(cmds, a.waitForVoiceEvent())
	}
	if a.ports.Frames != nil {
		cmds = append(cmds, a.waitForFrame())
	}
	return tea.Batch(cmds...)
}

// waitForChatEvent blocks on the conversation event channel and
// re-arms itself after every delivery.
func (a *App) waitForChatEvent() tea.Cmd {
	events := a.ports.Conversation.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return messages.ChatEventMsg{Event: ev}
	}
}

// waitForVoiceEvent blocks on the recorder event channel.
func (a *App) waitForVoiceEvent() tea.Cmd {
	events := a.ports.Recorder.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return messages.VoiceEventMsg{Event: ev}
	}
}

// waitForFrame blocks on the camera frame channel.
func (a *App) waitForFrame() tea.Cmd {
	frames := a.ports.Frames.Frames()
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return nil
		}
		return messages.FrameArrived{Frame: frame}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.statusBar.SetWidth(msg.Width)
		a.modeSelectView.SetDimensions(msg.Width, msg.Height-1)
		a.settingsView.SetDimensions(msg.Width, msg.Height-1)
		a.layoutBoard()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ModeChosen:
		return a, a.startSession(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.statusBar.SetBindings(a.bindingsFor(msg.View))
		if msg.View == messages.ViewSettings {
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.FrameArrived:
		return a, tea.Batch(a.scanFrame(msg.Frame), a.waitForFrame())

	case messages.ScanResolved:
		a.statusBar.SetState(status.StateReady)
		a.boardView, cmd = a.boardView.Update(msg)
		return a, cmd

	case messages.DrawCompleted:
		a.statusBar.SetState(status.StateReady)
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.boardView, cmd = a.boardView.Update(msg)
		return a, cmd

	case messages.ChatEventMsg:
		return a.handleChatEvent(msg)

	case messages.VoiceEventMsg:
		return a.handleVoiceEvent(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewModeSelect:
		a.modeSelectView, cmd = a.modeSelectView.Update(msg)
	case messages.ViewBoard:
		a.boardView, cmd = a.boardView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help is static.
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.NewSession):
		return a, a.resetSession()

	case keymap.Matches(key, a.keymap.Settings):
		if a.currentView != messages.ViewSettings {
			a.currentView = messages.ViewSettings
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewModeSelect:
		a.modeSelectView, cmd = a.modeSelectView.Update(msg)
		return a, cmd

	case messages.ViewBoard:
		return a.handleBoardKey(msg)

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if key == "esc" || keymap.Matches(key, a.keymap.Help) {
			a.currentView = messages.ViewBoard
		}
		return a, nil
	}
	return a, nil
}

// handleBoardKey routes board-stage keys. The chat panel owns typing
// keys whenever it is visible; board action keys apply only while the
// panel is collapsed.
func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if keymap.Matches(key, a.keymap.Panel) {
		a.cyclePanel()
		a.layoutBoard()
		return a, nil
	}

	if a.ports.Conversation.Visibility() == domain.PanelCollapsed {
		if keymap.Matches(key, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.boardView, cmd = a.boardView.Update(msg)
		return a, cmd
	}

	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// cyclePanel advances collapsed -> half -> expanded -> collapsed.
func (a *App) cyclePanel() {
	switch a.ports.Conversation.Visibility() {
	case domain.PanelCollapsed:
		a.ports.Conversation.SetVisibility(domain.PanelHalf)
	case domain.PanelHalf:
		a.ports.Conversation.SetVisibility(domain.PanelExpanded)
	case domain.PanelExpanded:
		a.ports.Conversation.SetVisibility(domain.PanelCollapsed)
	}
}

// startSession commits the chosen mode and spread and moves to the board.
func (a *App) startSession(msg messages.ModeChosen) tea.Cmd {
	a.ports.Session.SetMode(msg.Mode)
	if err := a.ports.Session.SetSpreadType(msg.Spread); err != nil {
		a.err = err
		return nil
	}
	if err := a.ports.Spread.NewSpread(msg.Spread); err != nil {
		a.err = err
		return nil
	}
	a.ports.Session.SetStep(domain.StepAcquire)
	a.ports.Session.SetCameraVisible(msg.Mode == domain.ModePhysical)

	a.boardView.Reset()
	a.chatView.Reset()
	a.currentView = messages.ViewBoard
	a.statusBar.SetSession(msg.Mode, msg.Spread)
	a.statusBar.SetBindings(a.keymap.BoardHelp())
	a.statusBar.Clear()
	a.layoutBoard()
	return nil
}

// resetSession rotates the epoch and returns to mode selection.
func (a *App) resetSession() tea.Cmd {
	a.ports.Session.Reset()
	a.ports.Session.SetCameraVisible(false)
	a.boardView.Reset()
	a.chatView.Reset()
	a.modeSelectView.Reset()
	a.currentView = messages.ViewModeSelect
	a.statusBar.SetSession("", "")
	a.statusBar.Clear()
	a.err = nil
	return nil
}

// scanFrame submits a captured frame for recognition. Frames arriving
// while the camera surface is hidden, or away from the board, are
// dropped; the session reconciles visibility against the mode.
func (a *App) scanFrame(frame driven.Frame) tea.Cmd {
	if !a.ports.Session.CameraVisible() || a.currentView != messages.ViewBoard {
		return nil
	}

	a.statusBar.SetState(status.StateScanning)
	ctx := a.ctx
	return func() tea.Msg {
		outcome, err := a.ports.Acquire.ResolveScan(ctx, frame.Data, frame.Name)
		return messages.ScanResolved{Outcome: outcome, Err: err}
	}
}

func (a *App) handleChatEvent(msg messages.ChatEventMsg) (tea.Model, tea.Cmd) {
	rearm := a.waitForChatEvent()

	// Stale-epoch completions are discarded unseen.
	if msg.Event.Epoch != "" && msg.Event.Epoch != a.ports.Session.Epoch() {
		return a, rearm
	}

	switch msg.Event.Kind {
	case driving.ReadingReady:
		a.statusBar.SetState(status.StateReady)
		a.layoutBoard()
	case driving.ReadingFailed:
		a.statusBar.SetState(status.StateError)
		if msg.Event.Err != nil {
			a.statusBar.SetMessage(msg.Event.Err.Error())
		}
	case driving.ChatReply, driving.ChatFailed:
		a.statusBar.SetState(status.StateReady)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.boardView, cmd = a.boardView.Update(msg)
	cmds = append(cmds, cmd)
	a.chatView, cmd = a.chatView.Update(msg)
	cmds = append(cmds, cmd, rearm)
	return a, tea.Batch(cmds...)
}

func (a *App) handleVoiceEvent(msg messages.VoiceEventMsg) (tea.Model, tea.Cmd) {
	rearm := a.waitForVoiceEvent()

	if msg.Event.Epoch != "" && msg.Event.Epoch != a.ports.Session.Epoch() {
		return a, rearm
	}

	switch msg.Event.Kind {
	case driving.VoiceStarted:
		a.statusBar.SetState(status.StateRecording)
		a.statusBar.SetElapsed(0)
	case driving.VoiceTick:
		a.statusBar.SetElapsed(msg.Event.Elapsed)
	case driving.VoiceTranscribing:
		a.statusBar.SetState(status.StateTranscribing)
	case driving.VoiceTranscript, driving.VoiceNoSpeech:
		a.statusBar.SetState(status.StateReady)
	case driving.VoiceError:
		a.statusBar.SetState(status.StateError)
		if msg.Event.Err != nil {
			a.statusBar.SetMessage(msg.Event.Err.Error())
		}
	}

	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)
	return a, tea.Batch(cmd, rearm)
}

// layoutBoard resizes the board and chat panel for the current panel
// visibility.
func (a *App) layoutBoard() {
	if !a.ready {
		return
	}
	contentHeight := a.height - 1

	switch a.ports.Conversation.Visibility() {
	case domain.PanelHalf:
		a.boardView.SetDimensions(a.width/2, contentHeight)
		a.chatView.SetDimensions(a.width-a.width/2, contentHeight)
	case domain.PanelExpanded:
		a.chatView.SetDimensions(a.width, contentHeight)
	default:
		a.boardView.SetDimensions(a.width, contentHeight)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var content string
	switch a.currentView {
	case messages.ViewModeSelect:
		content = a.modeSelectView.View()
	case messages.ViewBoard:
		content = a.viewBoard()
	case messages.ViewSettings:
		content = a.settingsView.View()
	case messages.ViewHelp:
		content = a.viewHelp()
	default:
		content = a.modeSelectView.View()
	}

	contentHeight := a.height - 1
	filled := lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return filled + "\n" + a.statusBar.View()
}

// viewBoard renders the board with the chat panel per its visibility.
func (a *App) viewBoard() string {
	switch a.ports.Conversation.Visibility() {
	case domain.PanelHalf:
		return lipgloss.JoinHorizontal(lipgloss.Top, a.boardView.View(), a.chatView.View())
	case domain.PanelExpanded:
		return a.chatView.View()
	default:
		return a.boardView.View()
	}
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to board"))
	return b.String()
}

// bindingsFor picks the status bar hints for a view.
func (a *App) bindingsFor(view messages.ViewType) []key.Binding {
	if view == messages.ViewBoard {
		return a.keymap.BoardHelp()
	}
	return nil
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.statusBar.SetWidth(width)
	a.modeSelectView.SetDimensions(width, height-1)
	a.settingsView.SetDimensions(width, height-1)
	a.layoutBoard()
}
