package services

import (
	"context"
	"strings"
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Conversation implements the driving port.
var _ driving.ConversationService = (*Conversation)(nil)

// apologyReply is appended to the history when a follow-up request
// fails; network failures are never fatal to the session.
const apologyReply = "I'm sorry, the cards are quiet for a moment. Please ask again."

// Conversation manages the chat panel state, request deduplication,
// history and audio-reply playback sequencing. Only this service
// touches the in-flight and playback flags.
type Conversation struct {
	session driving.SessionService
	spread  driving.SpreadService
	reading driven.ReadingAPI
	chat    driven.ChatAPI
	voice   driven.VoiceAPI
	player  driven.AudioPlayer
	prefs   driven.PrefStore

	mu sync.Mutex

	visibility domain.PanelVisibility
	history    []domain.ChatMessage

	// inflight guards sends: at most one outstanding at a time.
	inflight bool

	// readingInflight guards reading generation the same way.
	readingInflight bool

	// playing guards speech playback: a speak request while playback
	// is active is dropped rather than queued.
	playing bool

	// hasChatted is sticky once true; the first accepted send advances
	// the session into the chat step and nothing ever moves it back.
	hasChatted bool

	events chan driving.ChatEvent
}

// NewConversation creates a conversation service. Voice, player and
// prefs may be nil; spoken replies are then disabled.
func NewConversation(
	session driving.SessionService,
	spread driving.SpreadService,
	reading driven.ReadingAPI,
	chat driven.ChatAPI,
	voice driven.VoiceAPI,
	player driven.AudioPlayer,
	prefs driven.PrefStore,
) *Conversation {
	return &Conversation{
		session:    session,
		spread:     spread,
		reading:    reading,
		chat:       chat,
		voice:      voice,
		player:     player,
		prefs:      prefs,
		visibility: domain.PanelCollapsed,
		events:     make(chan driving.ChatEvent, 32),
	}
}

// Reset returns the panel to its new-session state.
// Registered as a session reset hook; in-flight completions become
// stale through the rotated epoch.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visibility = domain.PanelCollapsed
	c.history = nil
	c.hasChatted = false
}

// Events returns the conversation event channel.
func (c *Conversation) Events() <-chan driving.ChatEvent {
	return c.events
}

// Visibility returns the chat panel visibility.
func (c *Conversation) Visibility() domain.PanelVisibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility
}

// SetVisibility sets the chat panel visibility.
func (c *Conversation) SetVisibility(v domain.PanelVisibility) {
	if !v.IsValid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visibility = v
}

// History returns a copy of the conversation history.
func (c *Conversation) History() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// HasChatted reports the sticky once-true flag.
func (c *Conversation) HasChatted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasChatted
}

// Inflight reports whether a send is outstanding.
func (c *Conversation) Inflight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight
}

// RequestReading validates the spread synchronously, then requests a
// generated reading. The result seeds the follow-up context and opens
// the panel to half - a scripted transition, not a message side effect.
func (c *Conversation) RequestReading(ctx context.Context, question string) error {
	if !c.spread.IsComplete() {
		return domain.ErrSpreadIncomplete
	}

	c.mu.Lock()
	if c.readingInflight {
		c.mu.Unlock()
		return nil
	}
	c.readingInflight = true
	c.mu.Unlock()

	req := domain.ReadingRequest{
		SpreadType: c.spread.SpreadType(),
		Style:      c.session.Style(),
		Question:   question,
		OverlayID:  c.session.OverlayID(),
		Placements: c.spread.Placements(),
	}
	epoch := c.session.Epoch()

	go func() {
		result, err := c.reading.GenerateReading(ctx, req)

		c.mu.Lock()
		c.readingInflight = false
		c.mu.Unlock()

		// A reading that raced a session reset must not be applied.
		if c.session.Epoch() != epoch {
			logger.Debug("conversation: discarding stale reading result")
			return
		}

		if err != nil {
			logger.Warn("conversation: reading failed: %v", err)
			c.events <- driving.ChatEvent{Kind: driving.ReadingFailed, Epoch: epoch, Err: err}
			return
		}

		cards := make([]domain.ContextCard, len(req.Placements))
		for i, p := range req.Placements {
			cards[i] = domain.ContextCard{ID: p.CardID, Reversed: p.Reversed}
		}
		c.session.SetReading(result.SessionID, c.session.ReadingID(), &domain.ReadingContext{
			Cards:   cards,
			Overlay: req.OverlayID,
		})
		c.session.SetStep(domain.StepReading)
		c.SetVisibility(domain.PanelHalf)

		c.events <- driving.ChatEvent{Kind: driving.ReadingReady, Epoch: epoch, Reading: result}
	}()

	return nil
}

// Send submits a follow-up message. Trimmed-empty messages are rejected
// silently; a send while one is outstanding is dropped, preventing
// duplicate submissions from rapid re-triggering.
func (c *Conversation) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.inflight {
		c.mu.Unlock()
		logger.Debug("conversation: send dropped, one already in flight")
		return false
	}
	c.inflight = true
	c.history = append(c.history, domain.ChatMessage{Role: domain.RoleUser, Text: text})
	first := !c.hasChatted
	c.hasChatted = true
	c.mu.Unlock()

	if first {
		c.session.SetStep(domain.StepChat)
	}

	epoch := c.session.Epoch()
	go c.deliver(ctx, epoch, text)
	return true
}

// deliver routes the message: the context-aware endpoint when a
// structured reading and a reading identifier exist, the legacy
// session-only endpoint otherwise.
func (c *Conversation) deliver(ctx context.Context, epoch, text string) {
	reply, err := c.route(ctx, text)

	c.mu.Lock()
	c.inflight = false
	stale := c.session.Epoch() != epoch
	if stale {
		c.mu.Unlock()
		logger.Debug("conversation: discarding stale reply")
		return
	}

	var msg domain.ChatMessage
	if err != nil {
		msg = domain.ChatMessage{Role: domain.RoleAssistant, Text: apologyReply}
	} else {
		msg = domain.ChatMessage{Role: domain.RoleAssistant, Text: reply}
	}
	c.history = append(c.history, msg)
	c.mu.Unlock()

	if err != nil {
		logger.Warn("conversation: send failed: %v", err)
		c.events <- driving.ChatEvent{Kind: driving.ChatFailed, Epoch: epoch, Message: msg, Err: err}
		return
	}

	c.events <- driving.ChatEvent{Kind: driving.ChatReply, Epoch: epoch, Message: msg}

	if c.prefs != nil && c.prefs.GetBool(driven.PrefAutoSpeakChat) {
		c.Speak(ctx, reply)
	}
}

// route picks the endpoint for a follow-up message.
func (c *Conversation) route(ctx context.Context, text string) (string, error) {
	readingCtx := c.session.ReadingContext()
	readingID := c.session.ReadingID()

	if readingCtx != nil && readingID != "" {
		answer, err := c.reading.Ask(ctx, readingID, *readingCtx, text)
		if err != nil {
			return "", err
		}
		return answer.Text, nil
	}

	// Fallback for sessions that reached chat without a fresh
	// structured reading.
	sessionID := c.session.SessionID()
	if sessionID == "" {
		return "", domain.ErrNoReading
	}
	return c.chat.Chat(ctx, sessionID, text, c.session.Style())
}

// Speak synthesizes and plays the text. Only one playback may be
// active; an overlapping request is dropped so the most recent
// completed synthesis keeps audible priority.
func (c *Conversation) Speak(ctx context.Context, text string) {
	if c.voice == nil || c.player == nil {
		return
	}

	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		logger.Debug("conversation: speak dropped, playback active")
		return
	}
	c.playing = true
	c.mu.Unlock()

	voiceID := "nova"
	if c.prefs != nil {
		if v := c.prefs.GetString(driven.PrefVoice); v != "" {
			voiceID = v
		}
	}

	go func() {
		defer func() {
			c.mu.Lock()
			c.playing = false
			c.mu.Unlock()
		}()

		audio, err := c.voice.Synthesize(ctx, text, voiceID)
		if err != nil {
			logger.Warn("conversation: synthesis failed: %v", err)
			return
		}
		if err := c.player.Play(ctx, audio); err != nil {
			logger.Warn("conversation: playback failed: %v", err)
		}
	}()
}
