package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// eventTimeout bounds how long a tool waits for an asynchronous
// completion from the conversation service.
const eventTimeout = 60 * time.Second

// DrawSpreadInput is the input schema for the draw_spread tool.
type DrawSpreadInput struct {
	Spread        string `json:"spread,omitempty" jsonschema:"spread layout: one_card, three_card or celtic_cross (default one_card)"`
	AllowReversed bool   `json:"allow_reversed,omitempty" jsonschema:"whether drawn cards may be reversed"`
}

// PositionOutput is one drawn position.
type PositionOutput struct {
	Slot     string `json:"slot"`
	CardID   string `json:"card_id"`
	Reversed bool   `json:"reversed"`
}

// DrawSpreadOutput is the output schema for the draw_spread tool.
type DrawSpreadOutput struct {
	Spread    string           `json:"spread"`
	Positions []PositionOutput `json:"positions"`
}

// GetReadingInput is the input schema for the get_reading tool.
type GetReadingInput struct {
	Question string `json:"question,omitempty" jsonschema:"the question the querent is asking"`
	Style    string `json:"style,omitempty" jsonschema:"reader style: seer, counselor, strategist or shadow"`
}

// CardNoteOutput is per-card commentary within a reading.
type CardNoteOutput struct {
	CardID    string `json:"card_id"`
	SlotLabel string `json:"slot_label"`
	Note      string `json:"note"`
}

// GetReadingOutput is the output schema for the get_reading tool.
type GetReadingOutput struct {
	Summary   string           `json:"summary"`
	CardNotes []CardNoteOutput `json:"card_notes"`
	Advice    []string         `json:"advice,omitempty"`
	Theme     string           `json:"theme,omitempty"`
	Synthesis string           `json:"synthesis,omitempty"`
}

// AskReadingInput is the input schema for the ask_reading tool.
type AskReadingInput struct {
	Message string `json:"message" jsonschema:"the follow-up question about the reading"`
}

// AskReadingOutput is the output schema for the ask_reading tool.
type AskReadingOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "draw_spread",
		Description: "Draw a fresh tarot spread and return the positions",
	}, s.handleDrawSpread)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_reading",
		Description: "Generate a reading for the currently drawn spread",
	}, s.handleGetReading)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_reading",
		Description: "Ask a follow-up question about the current reading",
	}, s.handleAskReading)
}

// handleDrawSpread handles the draw_spread tool invocation.
func (s *Server) handleDrawSpread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DrawSpreadInput,
) (*mcp.CallToolResult, DrawSpreadOutput, error) {
	spreadType := domain.SpreadOneCard
	if input.Spread != "" {
		spreadType = domain.SpreadType(input.Spread)
		if !spreadType.IsValid() {
			return nil, DrawSpreadOutput{}, fmt.Errorf("unknown spread %q", input.Spread)
		}
	}

	s.ports.Session.SetMode(domain.ModeDigital)
	if err := s.ports.Session.SetSpreadType(spreadType); err != nil {
		return nil, DrawSpreadOutput{}, err
	}
	if err := s.ports.Spread.NewSpread(spreadType); err != nil {
		return nil, DrawSpreadOutput{}, err
	}
	if err := s.ports.Acquire.ResolveDraw(ctx, input.AllowReversed); err != nil {
		return nil, DrawSpreadOutput{}, err
	}

	slots := s.ports.Spread.Slots()
	output := DrawSpreadOutput{
		Spread:    spreadType.String(),
		Positions: make([]PositionOutput, 0, len(slots)),
	}
	for _, slot := range slots {
		output.Positions = append(output.Positions, PositionOutput{
			Slot:     slot.Label,
			CardID:   slot.CardID,
			Reversed: slot.Reversed,
		})
	}
	return nil, output, nil
}

// handleGetReading handles the get_reading tool invocation.
func (s *Server) handleGetReading(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReadingInput,
) (*mcp.CallToolResult, GetReadingOutput, error) {
	if input.Style != "" {
		style := domain.ReaderStyle(input.Style)
		if !style.IsValid() {
			return nil, GetReadingOutput{}, fmt.Errorf("unknown style %q", input.Style)
		}
		s.ports.Session.SetStyle(style)
	}

	if err := s.ports.Conversation.RequestReading(ctx, input.Question); err != nil {
		return nil, GetReadingOutput{}, err
	}

	reading, err := s.awaitReading(ctx)
	if err != nil {
		return nil, GetReadingOutput{}, err
	}

	output := GetReadingOutput{
		Summary:   reading.Summary,
		CardNotes: make([]CardNoteOutput, 0, len(reading.CardNotes)),
		Advice:    reading.Advice,
		Theme:     reading.Theme,
		Synthesis: reading.Synthesis,
	}
	for _, note := range reading.CardNotes {
		output.CardNotes = append(output.CardNotes, CardNoteOutput{
			CardID:    note.CardID,
			SlotLabel: note.SlotLabel,
			Note:      note.Note,
		})
	}
	return nil, output, nil
}

// handleAskReading handles the ask_reading tool invocation.
func (s *Server) handleAskReading(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskReadingInput,
) (*mcp.CallToolResult, AskReadingOutput, error) {
	if !s.ports.Conversation.Send(ctx, input.Message) {
		return nil, AskReadingOutput{}, fmt.Errorf("message rejected: empty or a send is already in flight")
	}

	reply, err := s.awaitReply(ctx)
	if err != nil {
		return nil, AskReadingOutput{}, err
	}
	return nil, AskReadingOutput{Answer: reply}, nil
}

// awaitReading blocks until the in-flight reading completes. The MCP
// server is the sole event consumer while serving, so draining the
// channel here never races another surface.
func (s *Server) awaitReading(ctx context.Context) (*domain.Reading, error) {
	events := s.ports.Conversation.Events()
	deadline := time.NewTimer(eventTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("timed out waiting for the reading")
		case ev := <-events:
			if ev.Epoch != s.ports.Session.Epoch() {
				continue
			}
			switch ev.Kind {
			case driving.ReadingReady:
				return ev.Reading, nil
			case driving.ReadingFailed:
				return nil, ev.Err
			}
		}
	}
}

// awaitReply blocks until the in-flight send completes.
func (s *Server) awaitReply(ctx context.Context) (string, error) {
	events := s.ports.Conversation.Events()
	deadline := time.NewTimer(eventTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", fmt.Errorf("timed out waiting for the reply")
		case ev := <-events:
			if ev.Epoch != s.ports.Session.Epoch() {
				continue
			}
			switch ev.Kind {
			case driving.ChatReply:
				return ev.Message.Text, nil
			case driving.ChatFailed:
				if ev.Err != nil {
					return "", ev.Err
				}
				return "", fmt.Errorf("the reader could not answer")
			}
		}
	}
}
