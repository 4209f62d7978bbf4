package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/services"
)

// mockReadingAPI implements driven.ReadingAPI with pluggable behaviour.
type mockReadingAPI struct {
	GenerateReadingFunc func(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error)
	DrawCardsFunc       func(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error)
	AskFunc             func(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error)
}

func (m *mockReadingAPI) GenerateReading(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error) {
	return m.GenerateReadingFunc(ctx, req)
}

func (m *mockReadingAPI) StartReading(_ context.Context, _ domain.Mode, _ domain.SpreadType) (string, error) {
	return "reading-1", nil
}

func (m *mockReadingAPI) DrawCards(ctx context.Context, readingID string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error) {
	return m.DrawCardsFunc(ctx, readingID, count, allowReversed, slots)
}

func (m *mockReadingAPI) Ask(ctx context.Context, readingID string, reading domain.ReadingContext, message string) (*domain.Answer, error) {
	return m.AskFunc(ctx, readingID, reading, message)
}

func (m *mockReadingAPI) Clarify(_ context.Context, _ domain.ClarifyRequest) (string, error) {
	return "", nil
}

type serverFixture struct {
	server  *Server
	session *services.Session
	spread  *services.Spread
}

func newServerFixture(t *testing.T, reading *mockReadingAPI) *serverFixture {
	t.Helper()

	if reading == nil {
		reading = &mockReadingAPI{}
	}

	session := services.NewSession()
	spread := services.NewSpread(nil, domain.DefaultHapticTuning())
	acquire := services.NewAcquirer(session, spread, nil, reading)
	conv := services.NewConversation(session, spread, reading, nil, nil, nil, nil)

	server, err := NewServer(&Ports{
		Session:      session,
		Spread:       spread,
		Acquire:      acquire,
		Conversation: conv,
	})
	require.NoError(t, err)

	return &serverFixture{server: server, session: session, spread: spread}
}

func TestNewServerRequiresServices(t *testing.T) {
	_, err := NewServer(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestDrawSpreadFillsAndReturnsPositions(t *testing.T) {
	reading := &mockReadingAPI{
		DrawCardsFunc: func(_ context.Context, _ string, count int, allowReversed bool, slots []string) ([]domain.DrawnPosition, error) {
			assert.True(t, allowReversed)
			positions := make([]domain.DrawnPosition, 0, count)
			cards := []string{"the_fool", "the_moon", "the_sun"}
			for i, slot := range slots {
				positions = append(positions, domain.DrawnPosition{
					Slot:     slot,
					CardID:   cards[i],
					Reversed: i == 1,
				})
			}
			return positions, nil
		},
	}
	f := newServerFixture(t, reading)

	_, output, err := f.server.handleDrawSpread(context.Background(), nil, DrawSpreadInput{
		Spread:        "three_card",
		AllowReversed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "three_card", output.Spread)
	require.Len(t, output.Positions, 3)
	assert.Equal(t, "Past", output.Positions[0].Slot)
	assert.Equal(t, "the_fool", output.Positions[0].CardID)
	assert.True(t, output.Positions[1].Reversed)
	assert.True(t, f.spread.IsComplete())
}

func TestDrawSpreadRejectsUnknownSpread(t *testing.T) {
	f := newServerFixture(t, nil)

	_, _, err := f.server.handleDrawSpread(context.Background(), nil, DrawSpreadInput{
		Spread: "five_card",
	})
	assert.ErrorContains(t, err, "unknown spread")
}

func TestGetReadingReturnsGeneratedReading(t *testing.T) {
	reading := &mockReadingAPI{
		GenerateReadingFunc: func(_ context.Context, req domain.ReadingRequest) (*domain.Reading, error) {
			assert.Equal(t, "what next", req.Question)
			assert.Equal(t, domain.StyleShadow, req.Style)
			return &domain.Reading{
				SessionID: "session-1",
				Summary:   "Change approaches.",
				CardNotes: []domain.CardNote{
					{CardID: "death", SlotLabel: "Focus", Note: "An ending."},
				},
				Advice: []string{"Accept it."},
			}, nil
		},
	}
	f := newServerFixture(t, reading)
	require.NoError(t, f.spread.NewSpread(domain.SpreadOneCard))
	_, err := f.spread.Place("death", nil, 0.9)
	require.NoError(t, err)

	_, output, err := f.server.handleGetReading(context.Background(), nil, GetReadingInput{
		Question: "what next",
		Style:    "shadow",
	})
	require.NoError(t, err)

	assert.Equal(t, "Change approaches.", output.Summary)
	require.Len(t, output.CardNotes, 1)
	assert.Equal(t, "death", output.CardNotes[0].CardID)
	assert.Equal(t, []string{"Accept it."}, output.Advice)
}

func TestGetReadingFailsOnIncompleteSpread(t *testing.T) {
	f := newServerFixture(t, nil)
	require.NoError(t, f.spread.NewSpread(domain.SpreadThreeCard))

	_, _, err := f.server.handleGetReading(context.Background(), nil, GetReadingInput{})
	assert.ErrorIs(t, err, domain.ErrSpreadIncomplete)
}

func TestAskReadingReturnsAnswer(t *testing.T) {
	reading := &mockReadingAPI{
		AskFunc: func(_ context.Context, readingID string, _ domain.ReadingContext, message string) (*domain.Answer, error) {
			assert.Equal(t, "reading-1", readingID)
			assert.Equal(t, "why the tower", message)
			return &domain.Answer{Text: "Sudden change demanded it."}, nil
		},
	}
	f := newServerFixture(t, reading)
	f.session.SetReading("session-1", "reading-1", &domain.ReadingContext{
		Cards: []domain.ContextCard{{ID: "the_tower"}},
	})

	_, output, err := f.server.handleAskReading(context.Background(), nil, AskReadingInput{
		Message: "why the tower",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sudden change demanded it.", output.Answer)
}

func TestAskReadingRejectsEmptyMessage(t *testing.T) {
	f := newServerFixture(t, nil)

	_, _, err := f.server.handleAskReading(context.Background(), nil, AskReadingInput{})
	assert.ErrorContains(t, err, "rejected")
}
