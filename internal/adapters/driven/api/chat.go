package api

import (
	"context"
	"fmt"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// chatRequest is the legacy /chat request format.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Style     string `json:"style,omitempty"`
}

// chatResponse is the legacy /chat response format.
type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// Chat sends a follow-up message scoped to a legacy session.
func (c *Client) Chat(ctx context.Context, sessionID, message string, style domain.ReaderStyle) (string, error) {
	var resp chatResponse
	err := c.postJSON(ctx, "/chat", chatRequest{
		SessionID: sessionID,
		Message:   message,
		Style:     style.String(),
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return resp.Reply, nil
}
