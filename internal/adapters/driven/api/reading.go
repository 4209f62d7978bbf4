package api

import (
	"context"
	"fmt"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// wirePlacement is the /reading placement format.
type wirePlacement struct {
	SlotIndex int    `json:"slot_index"`
	SlotLabel string `json:"slot_label"`
	CardID    string `json:"card_id"`
	Reversed  bool   `json:"reversed"`
}

// readingRequest is the /reading request format.
type readingRequest struct {
	SpreadType string          `json:"spread_type"`
	Style      string          `json:"style"`
	Question   string          `json:"question,omitempty"`
	OverlayID  string          `json:"overlay_id,omitempty"`
	Placements []wirePlacement `json:"placements"`
}

// readingResponse is the /reading response format.
type readingResponse struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
	CardNotes []struct {
		CardID    string `json:"card_id"`
		SlotLabel string `json:"slot_label"`
		Note      string `json:"note"`
	} `json:"card_notes"`
	Advice           []string `json:"advice"`
	Theme            string   `json:"theme"`
	Energy           string   `json:"energy"`
	Synthesis        string   `json:"synthesis"`
	ReflectionPrompt string   `json:"reflection_prompt"`
}

// GenerateReading generates a reading for a filled spread.
func (c *Client) GenerateReading(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error) {
	placements := make([]wirePlacement, len(req.Placements))
	for i, p := range req.Placements {
		placements[i] = wirePlacement{
			SlotIndex: p.SlotIndex,
			SlotLabel: p.SlotLabel,
			CardID:    p.CardID,
			Reversed:  p.Reversed,
		}
	}

	var resp readingResponse
	err := c.postJSON(ctx, "/reading", readingRequest{
		SpreadType: req.SpreadType.String(),
		Style:      req.Style.String(),
		Question:   req.Question,
		OverlayID:  string(req.OverlayID),
		Placements: placements,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("generate reading: %w", err)
	}

	reading := &domain.Reading{
		SessionID:        resp.SessionID,
		Summary:          resp.Summary,
		Advice:           resp.Advice,
		Theme:            resp.Theme,
		Energy:           resp.Energy,
		Synthesis:        resp.Synthesis,
		ReflectionPrompt: resp.ReflectionPrompt,
	}
	for _, note := range resp.CardNotes {
		reading.CardNotes = append(reading.CardNotes, domain.CardNote{
			CardID:    note.CardID,
			SlotLabel: note.SlotLabel,
			Note:      note.Note,
		})
	}
	return reading, nil
}

// readingStartRequest is the /reading/start request format.
type readingStartRequest struct {
	Mode     string `json:"mode"`
	SpreadID string `json:"spread_id"`
}

// readingStartResponse is the /reading/start response format.
type readingStartResponse struct {
	ReadingID string `json:"reading_id"`
	Mode      string `json:"mode"`
	SpreadID  string `json:"spread_id"`
	Seed      string `json:"seed"`
}

// StartReading begins an algorithmic-draw reading session.
func (c *Client) StartReading(ctx context.Context, mode domain.Mode, spread domain.SpreadType) (string, error) {
	var resp readingStartResponse
	err := c.postJSON(ctx, "/reading/start", readingStartRequest{
		Mode:     mode.String(),
		SpreadID: spread.String(),
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("start reading: %w", err)
	}
	return resp.ReadingID, nil
}

// readingDrawRequest is the /reading/draw request format.
type readingDrawRequest struct {
	ReadingID     string   `json:"reading_id"`
	Count         int      `json:"count"`
	AllowReversed bool     `json:"allow_reversed"`
	Slots         []string `json:"slots,omitempty"`
	ForceRedraw   bool     `json:"force_redraw"`
}

// readingDrawResponse is the /reading/draw response format.
type readingDrawResponse struct {
	ReadingID string `json:"reading_id"`
	Positions []struct {
		Slot     string `json:"slot"`
		CardID   string `json:"card_id"`
		Reversed bool   `json:"reversed"`
	} `json:"positions"`
}

// DrawCards draws count cards for the given slot labels. Repeated
// draws within one reading session force a fresh shuffle.
func (c *Client) DrawCards(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error) {
	var resp readingDrawResponse
	err := c.postJSON(ctx, "/reading/draw", readingDrawRequest{
		ReadingID:     readingID,
		Count:         count,
		AllowReversed: allowReversed,
		Slots:         slots,
		ForceRedraw:   true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("draw cards: %w", err)
	}

	positions := make([]domain.DrawnPosition, len(resp.Positions))
	for i, pos := range resp.Positions {
		positions[i] = domain.DrawnPosition{
			Slot:     pos.Slot,
			CardID:   pos.CardID,
			Reversed: pos.Reversed,
		}
	}
	return positions, nil
}

// askRequest is the /reading/ask request format.
type askRequest struct {
	ReadingID string     `json:"reading_id"`
	Reading   askContext `json:"reading"`
	Message   string     `json:"message"`
}

// askContext is the reading context payload for /reading/ask.
type askContext struct {
	Cards   []askCard `json:"cards"`
	Overlay string    `json:"overlay,omitempty"`
}

// askCard is one card reference within the ask context.
type askCard struct {
	ID       string `json:"id"`
	Reversed bool   `json:"reversed"`
}

// askResponse is the /reading/ask response format.
type askResponse struct {
	Answer    string `json:"answer"`
	ReadingID string `json:"reading_id"`
	UsedCards []struct {
		ID string `json:"id"`
	} `json:"used_cards"`
}

// Ask sends a context-aware follow-up question about a reading.
func (c *Client) Ask(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error) {
	cards := make([]askCard, len(reading.Cards))
	for i, card := range reading.Cards {
		cards[i] = askCard{ID: card.ID, Reversed: card.Reversed}
	}

	var resp askResponse
	err := c.postJSON(ctx, "/reading/ask", askRequest{
		ReadingID: readingID,
		Reading: askContext{
			Cards:   cards,
			Overlay: string(reading.Overlay),
		},
		Message: message,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	answer := &domain.Answer{Text: resp.Answer}
	for _, card := range resp.UsedCards {
		answer.UsedCards = append(answer.UsedCards, card.ID)
	}
	return answer, nil
}

// clarifyRequest is the /clarify request format.
type clarifyRequest struct {
	OriginalCardID   string `json:"original_card_id"`
	OriginalPosition string `json:"original_position"`
	ClarifierCardID  string `json:"clarifier_card_id"`
	Spread           string `json:"spread"`
	Style            string `json:"style"`
	SessionID        string `json:"session_id,omitempty"`
}

// clarifyResponse is the /clarify response format.
type clarifyResponse struct {
	OriginalCard   string `json:"original_card"`
	ClarifierCard  string `json:"clarifier_card"`
	Interpretation string `json:"interpretation"`
	Position       string `json:"position"`
}

// Clarify requests a clarifier sub-reading for an already-placed card.
func (c *Client) Clarify(ctx context.Context, req domain.ClarifyRequest) (string, error) {
	var resp clarifyResponse
	err := c.postJSON(ctx, "/clarify", clarifyRequest{
		OriginalCardID:   req.OriginalCardID,
		OriginalPosition: req.OriginalPosition,
		ClarifierCardID:  req.ClarifierCardID,
		Spread:           req.Spread.String(),
		Style:            req.Style.String(),
		SessionID:        req.SessionID,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("clarify: %w", err)
	}
	return resp.Interpretation, nil
}
