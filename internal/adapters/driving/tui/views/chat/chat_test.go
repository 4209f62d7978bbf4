package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/core/services"
)

func newChatView(t *testing.T) (*View, *services.Conversation) {
	t.Helper()

	session := services.NewSession()
	spread := services.NewSpread(nil, domain.DefaultHapticTuning())
	require.NoError(t, spread.NewSpread(domain.SpreadOneCard))
	conv := services.NewConversation(session, spread, nil, nil, nil, nil, nil)

	v := NewView(nil, nil, conv, nil)
	v.SetDimensions(60, 20)
	return v, conv
}

func typeText(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func enterMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestSubmitEmptyComposerDoesNothing(t *testing.T) {
	v, conv := newChatView(t)

	v, _ = v.Update(enterMsg())
	assert.Empty(t, conv.History())
}

func TestSubmitSendsAndClearsComposer(t *testing.T) {
	v, conv := newChatView(t)

	v = typeText(v, "what now")
	v, _ = v.Update(enterMsg())

	assert.Empty(t, v.InputValue())
	history := conv.History()
	require.NotEmpty(t, history)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "what now", history[0].Text)
}

func TestRapidResubmitKeepsComposerText(t *testing.T) {
	v, _ := newChatView(t)

	v = typeText(v, "first")
	v, _ = v.Update(enterMsg())

	v = typeText(v, "second")
	v, _ = v.Update(enterMsg())

	// The rate limiter swallows the immediate resubmit.
	assert.Equal(t, "second", v.InputValue())
}

func TestTranscriptPrefillsComposer(t *testing.T) {
	v, _ := newChatView(t)

	v, _ = v.Update(messages.VoiceEventMsg{Event: driving.VoiceEvent{
		Kind:       driving.VoiceTranscript,
		Transcript: "tell me about the moon",
	}})

	assert.Equal(t, "tell me about the moon", v.InputValue())
}

func TestAutoSendTranscriptBypassesComposer(t *testing.T) {
	v, conv := newChatView(t)

	v, _ = v.Update(messages.VoiceEventMsg{Event: driving.VoiceEvent{
		Kind:       driving.VoiceTranscript,
		Transcript: "sent directly",
		AutoSend:   true,
	}})

	assert.Empty(t, v.InputValue())
	history := conv.History()
	require.NotEmpty(t, history)
	assert.Equal(t, "sent directly", history[0].Text)
}

func TestNoSpeechShowsNotice(t *testing.T) {
	v, _ := newChatView(t)

	v, _ = v.Update(messages.VoiceEventMsg{Event: driving.VoiceEvent{
		Kind: driving.VoiceNoSpeech,
	}})
	assert.Contains(t, v.Notice(), "Didn't catch that")
}

func TestMicKeyWithoutRecorderShowsNotice(t *testing.T) {
	v, _ := newChatView(t)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Equal(t, "No microphone available", v.Notice())
}

func TestChatFailedEventShowsNotice(t *testing.T) {
	v, _ := newChatView(t)

	v, _ = v.Update(messages.ChatEventMsg{Event: driving.ChatEvent{
		Kind:    driving.ChatFailed,
		Message: domain.ChatMessage{Role: domain.RoleAssistant, Text: "apology"},
	}})
	assert.Contains(t, v.Notice(), "did not get through")
}

func TestResetClearsComposerAndLog(t *testing.T) {
	v, _ := newChatView(t)
	v = typeText(v, "lingering")

	v.Reset()
	assert.Empty(t, v.InputValue())
	assert.Empty(t, v.Notice())
}

// waitIdle blocks until the conversation's in-flight send settles.
func waitIdle(t *testing.T, conv *services.Conversation) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !conv.Inflight() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("send never settled")
}

func TestOwnMessageSnapsTranscriptToBottom(t *testing.T) {
	v, conv := newChatView(t)
	v.SetDimensions(60, 12)

	// A transcript tall enough to scroll.
	for i := 0; i < 6; i++ {
		require.True(t, conv.Send(context.Background(), fmt.Sprintf("question %d", i)))
		waitIdle(t, conv)
	}
	v, _ = v.Update(messages.ChatEventMsg{Event: driving.ChatEvent{Kind: driving.ChatReply}})

	// Scroll away from the tail; an arriving message now only marks
	// unread instead of following.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	require.True(t, conv.Send(context.Background(), "someone else's turn"))
	waitIdle(t, conv)
	v, _ = v.Update(messages.ChatEventMsg{Event: driving.ChatEvent{Kind: driving.ChatReply}})
	require.Positive(t, v.log.Unread(), "scrolled-away view must not follow")

	// The user's own send snaps back to the tail unconditionally.
	v = typeText(v, "my own message")
	v, _ = v.Update(enterMsg())
	assert.Empty(t, v.InputValue())
	assert.Zero(t, v.log.Unread())
}

func TestViewRendersComposer(t *testing.T) {
	v, _ := newChatView(t)
	v = typeText(v, "hello")
	out := v.View()
	assert.Contains(t, out, "hello")
}
