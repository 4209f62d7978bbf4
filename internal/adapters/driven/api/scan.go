package api

import (
	"context"
	"fmt"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// scanResponse is the /scan response format.
type scanResponse struct {
	OK         bool    `json:"ok"`
	CardID     string  `json:"card_id"`
	Confidence float64 `json:"confidence"`
	Matches    int     `json:"matches"`
}

// Scan submits an encoded image frame for recognition. A recognition
// miss comes back with OK false, not an error.
func (c *Client) Scan(ctx context.Context, image []byte, filename string) (*domain.ScanResult, error) {
	if filename == "" {
		filename = "frame.jpg"
	}

	var resp scanResponse
	if err := c.postMultipart(ctx, "/scan", "image", filename, image, &resp); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &domain.ScanResult{
		OK:         resp.OK,
		CardID:     resp.CardID,
		Confidence: resp.Confidence,
		Matches:    resp.Matches,
	}, nil
}
