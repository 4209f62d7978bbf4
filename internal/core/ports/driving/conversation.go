package driving

import (
	"context"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// ChatEventKind classifies conversation events.
type ChatEventKind int

const (
	// ChatReply carries an assistant reply that was appended to the
	// history.
	ChatReply ChatEventKind = iota

	// ChatFailed carries a send failure. An apology message was
	// appended to the history in place of a reply.
	ChatFailed

	// ReadingReady fires when a generated reading seeded the
	// conversation context.
	ReadingReady

	// ReadingFailed carries a reading generation failure.
	ReadingFailed
)

// ChatEvent is one conversation notification.
type ChatEvent struct {
	// Kind classifies the event.
	Kind ChatEventKind

	// Epoch is the session epoch the request belonged to. Consumers
	// must discard events carrying a stale epoch.
	Epoch string

	// Message is the appended message (ChatReply, ChatFailed).
	Message domain.ChatMessage

	// Reading is the generated reading (ReadingReady).
	Reading *domain.Reading

	// Err is the failure (ChatFailed, ReadingFailed).
	Err error
}

// ConversationService manages the chat panel state, request
// deduplication, history and audio-reply playback sequencing.
type ConversationService interface {
	// RequestReading validates the spread, requests a generated
	// reading and seeds the follow-up context. Fails synchronously
	// with domain.ErrSpreadIncomplete before any request is issued.
	// The result arrives as a ReadingReady or ReadingFailed event.
	RequestReading(ctx context.Context, question string) error

	// Send submits a follow-up message. Trimmed-empty messages and
	// sends while one is outstanding are dropped; the return value
	// reports whether the message was accepted.
	Send(ctx context.Context, text string) bool

	// Inflight reports whether a send is outstanding.
	Inflight() bool

	// History returns a copy of the conversation history.
	History() []domain.ChatMessage

	// HasChatted reports the sticky once-true flag used for step
	// progression.
	HasChatted() bool

	// Visibility returns the chat panel visibility.
	Visibility() domain.PanelVisibility

	// SetVisibility sets the chat panel visibility. Only direct user
	// action or scripted transitions may call this; message arrival
	// never changes visibility.
	SetVisibility(v domain.PanelVisibility)

	// Speak synthesizes and plays the text. A request while playback
	// is active is dropped rather than queued.
	Speak(ctx context.Context, text string)

	// Events returns the conversation event channel.
	Events() <-chan ChatEvent
}
