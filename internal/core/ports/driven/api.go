package driven

import (
	"context"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// ScanAPI recognises cards from captured camera frames.
type ScanAPI interface {
	// Scan submits an encoded image frame for recognition.
	// A recognition miss is reported via ScanResult.OK, not an error.
	Scan(ctx context.Context, image []byte, filename string) (*domain.ScanResult, error)
}

// ReadingAPI covers reading generation, algorithmic draws, clarifier
// sub-readings and context-aware follow-up conversation.
type ReadingAPI interface {
	// GenerateReading generates a reading for a filled spread.
	GenerateReading(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error)

	// StartReading begins an algorithmic-draw reading session and
	// returns the server-issued reading identifier.
	StartReading(ctx context.Context, mode domain.Mode, spread domain.SpreadType) (string, error)

	// DrawCards draws count cards for the given slot labels.
	DrawCards(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error)

	// Ask sends a context-aware follow-up question about a reading.
	Ask(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error)

	// Clarify requests a clarifier sub-reading for an already-placed card.
	Clarify(ctx context.Context, req domain.ClarifyRequest) (string, error)
}

// ChatAPI is the legacy session-only follow-up endpoint. It exists for
// sessions that reached chat without a fresh structured reading.
type ChatAPI interface {
	// Chat sends a follow-up message scoped to a legacy session.
	Chat(ctx context.Context, sessionID, message string, style domain.ReaderStyle) (string, error)
}

// VoiceAPI covers speech synthesis and transcription.
type VoiceAPI interface {
	// Synthesize converts text to audio using the named voice.
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)

	// Transcribe converts a recorded audio payload to text.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)

	// Voices lists the available synthesis voices.
	Voices(ctx context.Context) ([]domain.Voice, error)
}
