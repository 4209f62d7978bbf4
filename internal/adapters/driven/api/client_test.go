package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL})
}

func TestClient_Scan(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scan", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "frame.jpg", header.Filename)
		payload, _ := io.ReadAll(file)
		assert.Equal(t, []byte("jpeg bytes"), payload)

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true, "card_id": "fool", "confidence": 0.91, "matches": 42,
		})
	})

	result, err := client.Scan(context.Background(), []byte("jpeg bytes"), "frame.jpg")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "fool", result.CardID)
	assert.InDelta(t, 0.91, result.Confidence, 0.001)
	assert.Equal(t, 42, result.Matches)
}

func TestClient_Scan_Miss(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "matches": 3})
	})

	result, err := client.Scan(context.Background(), []byte("blurry"), "")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Empty(t, result.CardID)
}

func TestClient_GenerateReading(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reading", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "three_card", req["spread_type"])
		assert.Equal(t, "seer", req["style"])
		assert.Equal(t, "what lies ahead", req["question"])
		assert.Equal(t, "WIND", req["overlay_id"])

		placements := req["placements"].([]any)
		require.Len(t, placements, 1)
		first := placements[0].(map[string]any)
		assert.Equal(t, "fool", first["card_id"])
		assert.Equal(t, "Past", first["slot_label"])
		assert.Equal(t, true, first["reversed"])

		json.NewEncoder(w).Encode(map[string]any{
			"session_id": "session-1",
			"summary":    "a fresh start",
			"card_notes": []map[string]any{
				{"card_id": "fool", "slot_label": "Past", "note": "new beginnings"},
			},
			"advice": []string{"trust the process"},
			"theme":  "renewal",
		})
	})

	reading, err := client.GenerateReading(context.Background(), domain.ReadingRequest{
		SpreadType: domain.SpreadThreeCard,
		Style:      domain.StyleSeer,
		Question:   "what lies ahead",
		OverlayID:  domain.OverlayWind,
		Placements: []domain.Placement{
			{SlotIndex: 0, SlotLabel: "Past", CardID: "fool", Reversed: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "session-1", reading.SessionID)
	assert.Equal(t, "a fresh start", reading.Summary)
	require.Len(t, reading.CardNotes, 1)
	assert.Equal(t, "new beginnings", reading.CardNotes[0].Note)
	assert.Equal(t, []string{"trust the process"}, reading.Advice)
	assert.Equal(t, "renewal", reading.Theme)
}

func TestClient_StartReading(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reading/start", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "digital", req["mode"])
		assert.Equal(t, "three_card", req["spread_id"])

		json.NewEncoder(w).Encode(map[string]any{
			"reading_id": "reading-42",
			"mode":       "digital",
			"spread_id":  "three_card",
			"seed":       "abc123",
		})
	})

	id, err := client.StartReading(context.Background(), domain.ModeDigital, domain.SpreadThreeCard)
	require.NoError(t, err)
	assert.Equal(t, "reading-42", id)
}

func TestClient_DrawCards(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reading/draw", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reading-42", req["reading_id"])
		assert.Equal(t, float64(2), req["count"])
		assert.Equal(t, true, req["allow_reversed"])
		assert.Equal(t, true, req["force_redraw"])

		json.NewEncoder(w).Encode(map[string]any{
			"reading_id": "reading-42",
			"positions": []map[string]any{
				{"slot": "Past", "card_id": "fool", "reversed": false},
				{"slot": "Future", "card_id": "tower", "reversed": true},
			},
		})
	})

	positions, err := client.DrawCards(context.Background(), "reading-42", 2, true, []string{"Past", "Future"})
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, domain.DrawnPosition{Slot: "Past", CardID: "fool"}, positions[0])
	assert.Equal(t, domain.DrawnPosition{Slot: "Future", CardID: "tower", Reversed: true}, positions[1])
}

func TestClient_Ask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reading/ask", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reading-42", req["reading_id"])
		assert.Equal(t, "tell me more", req["message"])

		reading := req["reading"].(map[string]any)
		assert.Equal(t, "RAIN", reading["overlay"])
		cards := reading["cards"].([]any)
		require.Len(t, cards, 1)
		assert.Equal(t, "fool", cards[0].(map[string]any)["id"])

		json.NewEncoder(w).Encode(map[string]any{
			"answer":     "patience",
			"reading_id": "reading-42",
			"used_cards": []map[string]any{{"id": "fool", "name": "The Fool"}},
		})
	})

	answer, err := client.Ask(context.Background(), "reading-42", domain.ReadingContext{
		Cards:   []domain.ContextCard{{ID: "fool"}},
		Overlay: domain.OverlayRain,
	}, "tell me more")
	require.NoError(t, err)
	assert.Equal(t, "patience", answer.Text)
	assert.Equal(t, []string{"fool"}, answer.UsedCards)
}

func TestClient_Clarify(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clarify", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fool", req["original_card_id"])
		assert.Equal(t, "tower", req["clarifier_card_id"])
		assert.Equal(t, "Past", req["original_position"])

		json.NewEncoder(w).Encode(map[string]any{
			"original_card":  "fool",
			"clarifier_card": "tower",
			"interpretation": "the tower sharpens the fool",
			"position":       "Past",
		})
	})

	interpretation, err := client.Clarify(context.Background(), domain.ClarifyRequest{
		OriginalCardID:   "fool",
		OriginalPosition: "Past",
		ClarifierCardID:  "tower",
		Spread:           domain.SpreadThreeCard,
		Style:            domain.StyleSeer,
	})
	require.NoError(t, err)
	assert.Equal(t, "the tower sharpens the fool", interpretation)
}

func TestClient_Chat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "session-1", req["session_id"])
		assert.Equal(t, "hello", req["message"])
		assert.Equal(t, "counselor", req["style"])

		json.NewEncoder(w).Encode(map[string]any{
			"session_id": "session-1",
			"reply":      "a legacy reply",
		})
	})

	reply, err := client.Chat(context.Background(), "session-1", "hello", domain.StyleCounselor)
	require.NoError(t, err)
	assert.Equal(t, "a legacy reply", reply)
}

func TestClient_Synthesize(t *testing.T) {
	audio := []byte("mp3 bytes")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voice/synthesize", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "the cards are clear", req["text"])
		assert.Equal(t, "nova", req["voice"])

		json.NewEncoder(w).Encode(map[string]any{
			"audio_base64": base64.StdEncoding.EncodeToString(audio),
			"format":       "mp3",
			"voice":        "nova",
		})
	})

	got, err := client.Synthesize(context.Background(), "the cards are clear", "nova")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestClient_Synthesize_BadAudio(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"audio_base64": "not base64!!!"})
	})

	_, err := client.Synthesize(context.Background(), "text", "nova")
	assert.ErrorContains(t, err, "decode audio")
}

func TestClient_Transcribe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voice/transcribe", r.URL.Path)

		file, header, err := r.FormFile("audio")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recording.pcm", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{"text": "what does the fool mean"})
	})

	text, err := client.Transcribe(context.Background(), []byte("pcm bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, "what does the fool mean", text)
}

func TestClient_Voices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/voice/voices", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"voices": []map[string]any{
				{"id": "nova", "name": "Nova", "description": "Natural female voice, default choice"},
				{"id": "onyx", "name": "Onyx", "description": "Deep male voice, authoritative"},
			},
			"default": "nova",
		})
	})

	voices, err := client.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 2)
	assert.Equal(t, "nova", voices[0].ID)
	assert.Equal(t, "Onyx", voices[1].Name)
}

func TestClient_ServerErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"detail": "Unknown session_id"})
	})

	_, err := client.Chat(context.Background(), "missing", "hello", domain.StyleSeer)
	require.Error(t, err)
	assert.ErrorContains(t, err, "Unknown session_id")
	assert.ErrorContains(t, err, "404")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.client.Timeout)
}
