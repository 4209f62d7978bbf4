// Package board provides the spread board view: the slot row, clarifier
// annotations and the generated reading.
package board

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/keymap"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/styles"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// View is the spread board.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.SessionService
	spread  driving.SpreadService
	acquire driving.AcquisitionService
	conv    driving.ConversationService

	ctx context.Context

	// cursor is the highlighted slot index.
	cursor int

	// reading is the generated reading, nil until one arrives.
	reading *domain.Reading

	// notice is a transient one-line message shown under the board.
	notice      string
	noticeIsErr bool

	width  int
	height int
	ready  bool
}

// NewView creates a board view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SessionService,
	spread driving.SpreadService,
	acquire driving.AcquisitionService,
	conv driving.ConversationService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		session: session,
		spread:  spread,
		acquire: acquire,
		conv:    conv,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the board view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ScanResolved:
		v.applyScan(msg)
		return v, nil

	case messages.DrawCompleted:
		if msg.Err != nil {
			v.setNotice(fmt.Sprintf("Draw failed: %v", msg.Err), true)
		} else {
			v.setNotice("Cards drawn", false)
		}
		return v, nil

	case messages.ChatEventMsg:
		switch msg.Event.Kind {
		case driving.ReadingReady:
			v.reading = msg.Event.Reading
			v.notice = ""
		case driving.ReadingFailed:
			v.setNotice(fmt.Sprintf("Reading failed: %v", msg.Event.Err), true)
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Left):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case keymap.Matches(key, v.keymap.Right):
		if v.cursor < len(v.spread.Slots())-1 {
			v.cursor++
		}
		return v, nil

	case keymap.Matches(key, v.keymap.Draw):
		return v, v.drawCmd()

	case keymap.Matches(key, v.keymap.Undo):
		if !v.spread.Undo() {
			v.setNotice("Nothing to undo", false)
		} else {
			v.notice = ""
		}
		v.clampCursor()
		return v, nil

	case keymap.Matches(key, v.keymap.Reverse):
		v.spread.ToggleReversed(v.cursor)
		return v, nil

	case keymap.Matches(key, v.keymap.Clarify):
		return v, v.toggleClarify()

	case keymap.Matches(key, v.keymap.Reading):
		return v, v.readingCmd()
	}

	return v, nil
}

// toggleClarify arms the cursor slot, or disarms when already armed there.
func (v *View) toggleClarify() tea.Cmd {
	if target, armed := v.acquire.ClarifyTarget(); armed && target == v.cursor {
		v.acquire.DisarmClarify()
		v.notice = ""
		return nil
	}
	if err := v.acquire.ArmClarify(v.cursor); err != nil {
		v.setNotice(fmt.Sprintf("Cannot clarify: %v", err), true)
		return nil
	}
	v.setNotice("Clarifier armed: scan or draw the next card", false)
	return nil
}

// drawCmd requests an algorithmic draw for the empty slots.
func (v *View) drawCmd() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		err := v.acquire.ResolveDraw(ctx, true)
		return messages.DrawCompleted{Err: err}
	}
}

// readingCmd requests a generated reading for the filled spread.
func (v *View) readingCmd() tea.Cmd {
	if err := v.conv.RequestReading(v.ctx, ""); err != nil {
		v.setNotice(fmt.Sprintf("Cannot read yet: %v", err), true)
		return nil
	}
	v.setNotice("Consulting the cards...", false)
	return nil
}

func (v *View) applyScan(msg messages.ScanResolved) {
	if msg.Err != nil {
		v.setNotice(fmt.Sprintf("Scan failed: %v", msg.Err), true)
		return
	}
	if msg.Outcome == nil {
		return
	}

	switch msg.Outcome.Kind {
	case driving.ScanMiss:
		v.setNotice("No card recognised, try again", false)
	case driving.ScanPlaced:
		v.setNotice(fmt.Sprintf("Placed %s", msg.Outcome.CardID), false)
	case driving.ScanClarified:
		v.setNotice(fmt.Sprintf("Clarified with %s", msg.Outcome.CardID), false)
	}
}

func (v *View) setNotice(text string, isErr bool) {
	v.notice = text
	v.noticeIsErr = isErr
}

func (v *View) clampCursor() {
	if n := len(v.spread.Slots()); v.cursor >= n && n > 0 {
		v.cursor = n - 1
	}
}

// View renders the board.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("The Spread"))
	b.WriteString("\n\n")
	b.WriteString(v.renderSlots())
	b.WriteString("\n")

	if !v.spread.AnyFilled() && v.reading == nil && v.notice == "" {
		b.WriteString("\n")
		if v.session.Mode() == domain.ModePhysical {
			b.WriteString(v.styles.Muted.Render("Hold a card up to the camera to scan it"))
		} else {
			b.WriteString(v.styles.Muted.Render("Press d to draw your cards"))
		}
		b.WriteString("\n")
	}

	if notes := v.acquire.Annotations(); len(notes) > 0 {
		b.WriteString("\n")
		b.WriteString(v.renderAnnotations(notes))
	}

	if v.notice != "" {
		b.WriteString("\n")
		if v.noticeIsErr {
			b.WriteString(v.styles.Error.Render(v.notice))
		} else {
			b.WriteString(v.styles.Muted.Render(v.notice))
		}
		b.WriteString("\n")
	}

	if v.reading != nil {
		b.WriteString("\n")
		b.WriteString(v.renderReading())
	}

	return b.String()
}

// renderSlots lays the slot cards out in a row, wrapping for the
// ten-position layout.
func (v *View) renderSlots() string {
	slots := v.spread.Slots()
	target, armed := v.acquire.ClarifyTarget()

	cards := make([]string, 0, len(slots))
	for _, slot := range slots {
		style := v.styles.SlotEmpty
		body := "?"

		if slot.Filled() {
			style = v.styles.SlotFilled
			body = slot.CardID
			if slot.Reversed {
				body += " " + v.styles.ReversedTag.Render("(rev)")
			}
		}
		if armed && slot.Index == target {
			style = v.styles.SlotTarget
		}

		label := slot.Label
		if slot.Index == v.cursor {
			label = "▸ " + label
		}

		card := style.Render(v.styles.Muted.Render(label) + "\n" + body)
		cards = append(cards, card)
	}

	perRow := v.slotsPerRow(len(slots))
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return strings.Join(rows, "\n")
}

// slotsPerRow keeps the celtic cross readable on narrow terminals.
func (v *View) slotsPerRow(total int) int {
	if total <= 3 {
		return total
	}
	perRow := v.width / 18
	if perRow < 2 {
		perRow = 2
	}
	if perRow > 5 {
		perRow = 5
	}
	return perRow
}

func (v *View) renderAnnotations(notes []domain.ClarifierNote) string {
	slots := v.spread.Slots()

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Clarifiers"))
	b.WriteString("\n")
	for _, note := range notes {
		label := fmt.Sprintf("slot %d", note.SlotIndex)
		if note.SlotIndex >= 0 && note.SlotIndex < len(slots) {
			label = slots[note.SlotIndex].Label
		}
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s + %s: ", label, note.CardID)))
		b.WriteString(v.styles.Muted.Render(note.Interpretation))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderReading() string {
	wrap := lipgloss.NewStyle().Width(v.width - 2)

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Your Reading"))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(v.styles.Normal.Render(v.reading.Summary)))
	b.WriteString("\n")

	for _, note := range v.reading.CardNotes {
		b.WriteString("\n")
		b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s / %s", note.SlotLabel, note.CardID)))
		b.WriteString("\n")
		b.WriteString(wrap.Render(v.styles.Normal.Render(note.Note)))
		b.WriteString("\n")
	}

	if len(v.reading.Advice) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Advice"))
		b.WriteString("\n")
		for _, line := range v.reading.Advice {
			b.WriteString(v.styles.Normal.Render("• " + line))
			b.WriteString("\n")
		}
	}

	if v.reading.ReflectionPrompt != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.reading.ReflectionPrompt))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears view-local state for a fresh session.
func (v *View) Reset() {
	v.cursor = 0
	v.reading = nil
	v.notice = ""
	v.noticeIsErr = false
}

// Cursor returns the highlighted slot index.
func (v *View) Cursor() int {
	return v.cursor
}

// Reading returns the displayed reading, if any.
func (v *View) Reading() *domain.Reading {
	return v.reading
}

// Notice returns the transient notice line.
func (v *View) Notice() string {
	return v.notice
}
