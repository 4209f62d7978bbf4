// Package chat provides the conversation panel view: transcript,
// composer input and microphone control.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/components/chatlog"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/keymap"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// sendsPerSecond limits how quickly repeated sends may be submitted.
// The service deduplicates in-flight sends; the limiter only smooths
// key-repeat storms on enter.
const sendsPerSecond = 2

// View is the chat panel.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	conv     driving.ConversationService
	recorder driving.RecorderService

	ctx     context.Context
	log     *chatlog.Log
	input   textinput.Model
	limiter *rate.Limiter

	// notice is a transient line under the composer.
	notice string

	width  int
	height int
	ready  bool
}

// NewView creates a chat panel view. recorder may be nil when no
// microphone backend is available.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	conv driving.ConversationService,
	recorder driving.RecorderService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	input := textinput.New()
	input.Placeholder = "Ask the cards..."
	input.CharLimit = 500
	input.Focus()

	return &View{
		styles:   s,
		keymap:   km,
		conv:     conv,
		recorder: recorder,
		ctx:      context.Background(),
		log:      chatlog.NewLog(s),
		input:    input,
		limiter:  rate.NewLimiter(rate.Limit(sendsPerSecond), 1),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the chat view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ChatEventMsg:
		return v.handleChatEvent(msg.Event)

	case messages.VoiceEventMsg:
		return v.handleVoiceEvent(msg.Event)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	v.log, cmd = v.log.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Select):
		return v, v.submit()

	case keymap.Matches(key, v.keymap.Mic):
		return v, v.toggleMic()

	case key == "pgup", key == "pgdown":
		var cmd tea.Cmd
		v.log, cmd = v.log.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit sends the composer text through the conversation service.
func (v *View) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		return nil
	}
	if !v.limiter.Allow() {
		return nil
	}
	if !v.conv.Send(v.ctx, text) {
		v.notice = "Still thinking, hold on..."
		return nil
	}

	v.input.SetValue("")
	v.notice = ""
	v.refreshLog()
	// The user's own message always snaps the transcript to the tail,
	// even when they had scrolled away.
	v.log.GotoBottom()
	return nil
}

// toggleMic starts or stops voice capture.
func (v *View) toggleMic() tea.Cmd {
	if v.recorder == nil {
		v.notice = "No microphone available"
		return nil
	}

	switch v.recorder.Phase() {
	case domain.MicRecording:
		v.recorder.Stop()
		return nil
	case domain.MicIdle:
		if err := v.recorder.Start(v.ctx); err != nil {
			v.notice = fmt.Sprintf("Mic: %v", err)
		}
		return nil
	}
	return nil
}

func (v *View) handleChatEvent(ev driving.ChatEvent) (*View, tea.Cmd) {
	switch ev.Kind {
	case driving.ChatReply, driving.ChatFailed:
		v.refreshLog()
		if ev.Kind == driving.ChatFailed {
			v.notice = "That message did not get through"
		} else {
			v.notice = ""
		}
	case driving.ReadingReady:
		v.refreshLog()
	}
	return v, nil
}

func (v *View) handleVoiceEvent(ev driving.VoiceEvent) (*View, tea.Cmd) {
	switch ev.Kind {
	case driving.VoiceTranscript:
		if ev.AutoSend {
			if v.conv.Send(v.ctx, ev.Transcript) {
				v.refreshLog()
				v.log.GotoBottom()
			}
			return v, nil
		}
		v.input.SetValue(ev.Transcript)
		v.input.CursorEnd()
	case driving.VoiceNoSpeech:
		v.notice = "Didn't catch that"
	case driving.VoiceError:
		v.notice = fmt.Sprintf("Voice: %v", ev.Err)
	}
	return v, nil
}

// refreshLog re-reads the history from the conversation service.
func (v *View) refreshLog() {
	v.log.SetMessages(v.conv.History())
}

// View renders the chat panel.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.log.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Width(v.width - 4).Render(v.input.View()))

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
	}

	return v.styles.Panel.Width(v.width - 2).Render(b.String())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	logHeight := height - 6
	if logHeight < 3 {
		logHeight = 3
	}
	v.log.SetDimensions(width-6, logHeight)
}

// Reset clears the composer and transcript for a fresh session.
func (v *View) Reset() {
	v.input.SetValue("")
	v.notice = ""
	v.log.SetMessages(nil)
}

// Notice returns the transient notice line.
func (v *View) Notice() string {
	return v.notice
}

// InputValue returns the composer text.
func (v *View) InputValue() string {
	return v.input.Value()
}
