package mcp

import (
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the mode/step state machine.
	Session driving.SessionService

	// Spread manages the spread board.
	Spread driving.SpreadService

	// Acquire resolves drawn cards into placements.
	Acquire driving.AcquisitionService

	// Conversation generates readings and answers follow-up questions.
	Conversation driving.ConversationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Spread == nil {
		return ErrMissingSpreadService
	}
	if p.Acquire == nil {
		return ErrMissingAcquisitionService
	}
	if p.Conversation == nil {
		return ErrMissingConversationService
	}
	return nil
}
