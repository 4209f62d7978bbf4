package domain

// Placement is one filled spread position as sent to the server.
type Placement struct {
	// SlotIndex is the position ordinal within the spread.
	SlotIndex int

	// SlotLabel is the human-readable position name.
	SlotLabel string

	// CardID is the placed card.
	CardID string

	// Reversed is the card orientation.
	Reversed bool
}

// ReadingRequest asks the server to generate a reading for a filled spread.
type ReadingRequest struct {
	// SpreadType is the spread layout identifier.
	SpreadType SpreadType

	// Style is the reader voice for the generated text.
	Style ReaderStyle

	// Question is the optional question the querent asked.
	Question string

	// OverlayID is the optional weather overlay.
	OverlayID OverlayID

	// Placements are the filled positions, in slot order.
	Placements []Placement
}

// CardNote is the per-card commentary within a generated reading.
type CardNote struct {
	// CardID is the card the note refers to.
	CardID string

	// SlotLabel is the position the card occupies.
	SlotLabel string

	// Note is the generated commentary.
	Note string
}

// Reading is a generated reading returned by the server.
type Reading struct {
	// SessionID is the server-issued correlation token for legacy chat.
	SessionID string

	// Summary is the overall reading text.
	Summary string

	// CardNotes hold per-card commentary in slot order.
	CardNotes []CardNote

	// Advice lists actionable guidance lines.
	Advice []string

	// Theme, Energy, Synthesis and ReflectionPrompt are optional
	// enrichments newer server versions return.
	Theme            string
	Energy           string
	Synthesis        string
	ReflectionPrompt string
}

// ContextCard is one card reference within a reading context.
type ContextCard struct {
	// ID is the card identifier.
	ID string

	// Reversed is the card orientation.
	Reversed bool
}

// ReadingContext is the minimal payload grounding follow-up conversation:
// the cards with orientation plus the active overlay.
type ReadingContext struct {
	// Cards are the cards of the reading, in slot order.
	Cards []ContextCard

	// Overlay is the weather overlay active for the reading, if any.
	Overlay OverlayID
}

// Answer is a context-aware chat reply.
type Answer struct {
	// Text is the assistant's reply.
	Text string

	// UsedCards names the cards the reply drew on.
	UsedCards []string
}

// ScanResult is the outcome of recognising a card from an image.
type ScanResult struct {
	// OK is true when a card was recognised.
	OK bool

	// CardID is the recognised card, empty on a miss.
	CardID string

	// Confidence is the recogniser's confidence in [0, 1].
	Confidence float64

	// Matches is the raw feature-match count, advisory only.
	Matches int
}

// DrawnPosition is one algorithmically drawn card for a named slot.
type DrawnPosition struct {
	// Slot is the slot label the card was drawn for.
	Slot string

	// CardID is the drawn card.
	CardID string

	// Reversed is the drawn orientation.
	Reversed bool
}

// ClarifyRequest asks for a clarifier sub-reading on an already-placed card.
type ClarifyRequest struct {
	// OriginalCardID is the card being clarified.
	OriginalCardID string

	// OriginalPosition is the slot label of the card being clarified.
	OriginalPosition string

	// ClarifierCardID is the supplementary card.
	ClarifierCardID string

	// Spread is the current spread layout identifier.
	Spread SpreadType

	// Style is the reader voice.
	Style ReaderStyle

	// SessionID is the legacy session correlation token, if any.
	SessionID string
}

// ClarifierNote is a resolved clarifier attached to a slot's UI region.
// Clarifiers annotate a slot; they are never written into the spread.
type ClarifierNote struct {
	// SlotIndex is the annotated slot.
	SlotIndex int

	// CardID is the clarifier card.
	CardID string

	// Interpretation is the generated clarifier text.
	Interpretation string
}

// Voice describes one available TTS voice.
type Voice struct {
	// ID is the voice identifier sent to the synthesis endpoint.
	ID string

	// Name is the display name.
	Name string

	// Description summarises the voice's character.
	Description string
}
