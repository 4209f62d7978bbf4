package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/components/status"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/core/services"
)

func frameFixture() driven.Frame {
	return driven.Frame{Name: "frame.jpg", Data: []byte{0xff, 0xd8}}
}

// stubReadingAPI satisfies driven.ReadingAPI for wiring tests.
type stubReadingAPI struct{}

func (s *stubReadingAPI) GenerateReading(_ context.Context, _ domain.ReadingRequest) (*domain.Reading, error) {
	return &domain.Reading{Summary: "stub"}, nil
}

func (s *stubReadingAPI) StartReading(_ context.Context, _ domain.Mode, _ domain.SpreadType) (string, error) {
	return "reading-1", nil
}

func (s *stubReadingAPI) DrawCards(_ context.Context, _ string, _ int, _ bool, _ []string) ([]domain.DrawnPosition, error) {
	return nil, nil
}

func (s *stubReadingAPI) Ask(_ context.Context, _ string, _ domain.ReadingContext, _ string) (*domain.Answer, error) {
	return &domain.Answer{Text: "stub"}, nil
}

func (s *stubReadingAPI) Clarify(_ context.Context, _ domain.ClarifyRequest) (string, error) {
	return "stub", nil
}

func newTestApp(t *testing.T) (*App, *services.Session) {
	t.Helper()

	reading := &stubReadingAPI{}
	session := services.NewSession()
	spread := services.NewSpread(nil, domain.DefaultHapticTuning())
	acquire := services.NewAcquirer(session, spread, nil, reading)
	conv := services.NewConversation(session, spread, reading, nil, nil, nil, nil)

	app, err := NewApp(&Ports{
		Session:      session,
		Spread:       spread,
		Acquire:      acquire,
		Conversation: conv,
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, session
}

func TestNewAppRequiresServices(t *testing.T) {
	_, err := NewApp(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestAppStartsAtModeSelect(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Equal(t, messages.ViewModeSelect, app.CurrentView())
	assert.Contains(t, app.View(), "Tarot42")
}

func TestModeChosenStartsSession(t *testing.T) {
	app, session := newTestApp(t)

	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadThreeCard,
	})
	app = model.(*App)

	assert.Equal(t, messages.ViewBoard, app.CurrentView())
	assert.Equal(t, domain.ModeDigital, session.Mode())
	assert.Equal(t, domain.StepAcquire, session.Step())
	assert.Len(t, app.ports.Spread.Slots(), 3)
}

func TestTabCyclesPanelVisibility(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)
	require.Equal(t, domain.PanelCollapsed, app.ports.Conversation.Visibility())

	tab := tea.KeyMsg{Type: tea.KeyTab}

	model, _ = app.Update(tab)
	app = model.(*App)
	assert.Equal(t, domain.PanelHalf, app.ports.Conversation.Visibility())

	model, _ = app.Update(tab)
	app = model.(*App)
	assert.Equal(t, domain.PanelExpanded, app.ports.Conversation.Visibility())

	model, _ = app.Update(tab)
	app = model.(*App)
	assert.Equal(t, domain.PanelCollapsed, app.ports.Conversation.Visibility())
}

func TestNewSessionResetsToModeSelect(t *testing.T) {
	app, session := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)
	epochBefore := session.Epoch()

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = model.(*App)

	assert.Equal(t, messages.ViewModeSelect, app.CurrentView())
	assert.NotEqual(t, epochBefore, session.Epoch(), "reset rotates the epoch")
	assert.Equal(t, domain.StepModeSelect, session.Step())
}

func TestStaleChatEventIsDiscarded(t *testing.T) {
	app, session := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)
	require.Equal(t, status.StateReady, app.statusBar.State())

	model, _ = app.Update(messages.ChatEventMsg{Event: driving.ChatEvent{
		Kind:  driving.ReadingFailed,
		Epoch: "some-older-epoch",
		Err:   assert.AnError,
	}})
	app = model.(*App)

	assert.Equal(t, status.StateReady, app.statusBar.State(), "stale event must not surface")
	_ = session
}

func TestCurrentEpochChatEventUpdatesStatus(t *testing.T) {
	app, session := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)

	model, _ = app.Update(messages.ChatEventMsg{Event: driving.ChatEvent{
		Kind:  driving.ReadingFailed,
		Epoch: session.Epoch(),
		Err:   assert.AnError,
	}})
	app = model.(*App)

	assert.Equal(t, status.StateError, app.statusBar.State())
}

func TestSettingsKeyOpensSettings(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = model.(*App)
	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "Settings")
}

func TestHelpViewListsBindings(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app = model.(*App)
	require.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "draw")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewBoard, app.CurrentView())
}

func TestFramesIgnoredOutsidePhysicalMode(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)

	cmd := app.scanFrame(frameFixture())
	assert.Nil(t, cmd, "digital mode never scans")
}

func TestCameraSurfaceFollowsSession(t *testing.T) {
	app, session := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModePhysical,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)

	require.True(t, session.CameraVisible(), "physical acquisition shows the camera surface")
	assert.NotNil(t, app.scanFrame(frameFixture()))

	// A new session hides the surface again; frames arriving in the
	// gap are dropped.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = model.(*App)
	assert.False(t, session.CameraVisible())
	assert.Nil(t, app.scanFrame(frameFixture()))
}

func TestDigitalModeHidesCameraSurface(t *testing.T) {
	app, session := newTestApp(t)
	model, _ := app.Update(messages.ModeChosen{
		Mode:   domain.ModeDigital,
		Spread: domain.SpreadOneCard,
	})
	app = model.(*App)

	assert.False(t, session.CameraVisible())
	_ = app
}

func TestQuitMessageQuits(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
}
