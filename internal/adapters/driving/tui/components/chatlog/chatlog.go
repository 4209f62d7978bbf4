// Package chatlog provides the scrolling conversation transcript
// component for the chat panel.
package chatlog

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// nearBottomSlack is how many lines above the bottom still count as
// "following" the conversation. Within the slack, a new message
// auto-scrolls; outside it, the view stays put and the unread
// indicator appears instead.
const nearBottomSlack = 3

// Log renders the conversation history in a scrollable viewport.
type Log struct {
	styles   *styles.Styles
	viewport viewport.Model
	messages []domain.ChatMessage

	// unread counts messages that arrived while the user was scrolled
	// away from the bottom.
	unread int

	width  int
	height int
}

// NewLog creates a chat log component.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}
	vp := viewport.New(80, 10)
	return &Log{
		styles:   s,
		viewport: vp,
		width:    80,
		height:   10,
	}
}

// Init initialises the log.
func (l *Log) Init() tea.Cmd {
	return nil
}

// Update forwards scroll keys to the viewport. Scrolling back to the
// bottom clears the unread indicator.
func (l *Log) Update(msg tea.Msg) (*Log, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	if l.nearBottom() {
		l.unread = 0
	}
	return l, cmd
}

// SetMessages replaces the transcript. The scroll position follows the
// newest message only when the user was already reading the tail.
func (l *Log) SetMessages(messages []domain.ChatMessage) {
	grew := len(messages) > len(l.messages)
	following := l.nearBottom()

	l.messages = messages
	l.viewport.SetContent(l.render())

	if following {
		l.viewport.GotoBottom()
		l.unread = 0
	} else if grew {
		l.unread++
	}
}

// Append adds one message to the transcript.
func (l *Log) Append(message domain.ChatMessage) {
	l.SetMessages(append(l.messages, message))
}

// Unread returns how many messages arrived while scrolled away.
func (l *Log) Unread() int {
	return l.unread
}

// GotoBottom jumps to the newest message and clears the indicator.
func (l *Log) GotoBottom() {
	l.viewport.GotoBottom()
	l.unread = 0
}

// nearBottom reports whether the view is close enough to the bottom to
// keep following new messages.
func (l *Log) nearBottom() bool {
	return l.viewport.TotalLineCount()-(l.viewport.YOffset+l.viewport.Height) <= nearBottomSlack
}

// SetDimensions sets the component dimensions.
func (l *Log) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.viewport.SetContent(l.render())
}

// View renders the transcript with the unread affordance below it.
func (l *Log) View() string {
	if len(l.messages) == 0 {
		return l.styles.Muted.Render("The cards await your question.")
	}

	out := l.viewport.View()
	if l.unread > 0 {
		marker := l.styles.Warning.Render("▼ new messages")
		out += "\n" + marker
	}
	return out
}

// render formats the transcript for the viewport.
func (l *Log) render() string {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(l.width)

	for i, msg := range l.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case domain.RoleUser:
			b.WriteString(l.styles.Subtitle.Render("You"))
		default:
			b.WriteString(l.styles.Title.Render("Reader"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(l.styles.Normal.Render(msg.Text)))
		b.WriteString("\n")
	}
	return b.String()
}
