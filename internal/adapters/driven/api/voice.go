package api

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// synthesizeRequest is the /voice/synthesize request format.
type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// synthesizeResponse is the /voice/synthesize response format. The
// audio travels base64-encoded inside the JSON envelope.
type synthesizeResponse struct {
	AudioBase64 string `json:"audio_base64"`
	Format      string `json:"format"`
	Voice       string `json:"voice"`
}

// Synthesize converts text to audio using the named voice.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	var resp synthesizeResponse
	err := c.postJSON(ctx, "/voice/synthesize", synthesizeRequest{
		Text:  text,
		Voice: voice,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("synthesize: decode audio: %w", err)
	}
	return audio, nil
}

// transcribeResponse is the /voice/transcribe response format.
type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe converts a recorded audio payload to text.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "recording.pcm"
	}

	var resp transcribeResponse
	if err := c.postMultipart(ctx, "/voice/transcribe", "audio", filename, audio, &resp); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return resp.Text, nil
}

// voicesResponse is the /voice/voices response format.
type voicesResponse struct {
	Voices []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"voices"`
	Default string `json:"default"`
}

// Voices lists the available synthesis voices.
func (c *Client) Voices(ctx context.Context) ([]domain.Voice, error) {
	var resp voicesResponse
	if err := c.getJSON(ctx, "/voice/voices", &resp); err != nil {
		return nil, fmt.Errorf("voices: %w", err)
	}

	voices := make([]domain.Voice, len(resp.Voices))
	for i, v := range resp.Voices {
		voices[i] = domain.Voice{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
		}
	}
	return voices, nil
}
