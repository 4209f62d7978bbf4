package services

import (
	"context"
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// MockScanAPI implements driven.ScanAPI for testing.
type MockScanAPI struct {
	ScanFunc func(ctx context.Context, image []byte, filename string) (*domain.ScanResult, error)
}

func (m *MockScanAPI) Scan(ctx context.Context, image []byte, filename string) (*domain.ScanResult, error) {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx, image, filename)
	}
	return &domain.ScanResult{OK: false}, nil
}

// MockReadingAPI implements driven.ReadingAPI for testing.
type MockReadingAPI struct {
	GenerateReadingFunc func(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error)
	StartReadingFunc    func(ctx context.Context, mode domain.Mode, spread domain.SpreadType) (string, error)
	DrawCardsFunc       func(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error)
	AskFunc             func(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error)
	ClarifyFunc         func(ctx context.Context, req domain.ClarifyRequest) (string, error)
}

func (m *MockReadingAPI) GenerateReading(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error) {
	if m.GenerateReadingFunc != nil {
		return m.GenerateReadingFunc(ctx, req)
	}
	return &domain.Reading{SessionID: "session-1", Summary: "a reading"}, nil
}

func (m *MockReadingAPI) StartReading(ctx context.Context, mode domain.Mode, spread domain.SpreadType) (string, error) {
	if m.StartReadingFunc != nil {
		return m.StartReadingFunc(ctx, mode, spread)
	}
	return "reading-1", nil
}

func (m *MockReadingAPI) DrawCards(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error) {
	if m.DrawCardsFunc != nil {
		return m.DrawCardsFunc(ctx, readingID, count, allowReversed, slots)
	}
	positions := make([]domain.DrawnPosition, count)
	for i := range positions {
		positions[i] = domain.DrawnPosition{Slot: slots[i], CardID: "card"}
	}
	return positions, nil
}

func (m *MockReadingAPI) Ask(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, readingID, reading, message)
	}
	return &domain.Answer{Text: "an answer"}, nil
}

func (m *MockReadingAPI) Clarify(ctx context.Context, req domain.ClarifyRequest) (string, error) {
	if m.ClarifyFunc != nil {
		return m.ClarifyFunc(ctx, req)
	}
	return "a clarification", nil
}

// MockChatAPI implements driven.ChatAPI for testing.
type MockChatAPI struct {
	ChatFunc func(ctx context.Context, sessionID, message string, style domain.ReaderStyle) (string, error)
}

func (m *MockChatAPI) Chat(ctx context.Context, sessionID, message string, style domain.ReaderStyle) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, sessionID, message, style)
	}
	return "a legacy reply", nil
}

// MockVoiceAPI implements driven.VoiceAPI for testing.
type MockVoiceAPI struct {
	SynthesizeFunc func(ctx context.Context, text, voice string) ([]byte, error)
	TranscribeFunc func(ctx context.Context, audio []byte, filename string) (string, error)
	VoicesFunc     func(ctx context.Context) ([]domain.Voice, error)
}

func (m *MockVoiceAPI) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, voice)
	}
	return []byte("audio"), nil
}

func (m *MockVoiceAPI) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, filename)
	}
	return "a transcript", nil
}

func (m *MockVoiceAPI) Voices(ctx context.Context) ([]domain.Voice, error) {
	if m.VoicesFunc != nil {
		return m.VoicesFunc(ctx)
	}
	return nil, nil
}

// MockHaptics records pulses for testing.
type MockHaptics struct {
	mu     sync.Mutex
	pulses []domain.HapticLevel
}

func (m *MockHaptics) Pulse(level domain.HapticLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pulses = append(m.pulses, level)
}

func (m *MockHaptics) Pulses() []domain.HapticLevel {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.HapticLevel, len(m.pulses))
	copy(out, m.pulses)
	return out
}

// MockPrefStore implements driven.PrefStore for testing.
type MockPrefStore struct {
	mu   sync.Mutex
	data map[string]any
}

func NewMockPrefStore() *MockPrefStore {
	return &MockPrefStore{data: make(map[string]any)}
}

func (m *MockPrefStore) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockPrefStore) GetString(key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (m *MockPrefStore) GetBool(key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (m *MockPrefStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// MockPlayer implements driven.AudioPlayer for testing.
type MockPlayer struct {
	mu      sync.Mutex
	played  [][]byte
	release chan struct{}
}

// NewMockPlayer creates a player. If blocking is true, Play blocks
// until Release is called.
func NewMockPlayer(blocking bool) *MockPlayer {
	p := &MockPlayer{}
	if blocking {
		p.release = make(chan struct{})
	}
	return p
}

func (m *MockPlayer) Play(ctx context.Context, audio []byte) error {
	m.mu.Lock()
	m.played = append(m.played, audio)
	m.mu.Unlock()
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *MockPlayer) Release() {
	close(m.release)
}

func (m *MockPlayer) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.played)
}
