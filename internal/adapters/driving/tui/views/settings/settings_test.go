package settings

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattleworks/tarot42-cli/internal/adapters/driven/prefs/memory"
	"github.com/wattleworks/tarot42-cli/internal/adapters/driving/tui/messages"
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/services"
)

// mockVoiceAPI serves a fixed voice list.
type mockVoiceAPI struct {
	voices []domain.Voice
	err    error
}

func (m *mockVoiceAPI) Synthesize(_ context.Context, _, _ string) ([]byte, error) {
	return nil, nil
}

func (m *mockVoiceAPI) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "", nil
}

func (m *mockVoiceAPI) Voices(_ context.Context) ([]domain.Voice, error) {
	return m.voices, m.err
}

func newSettingsView(t *testing.T) (*View, *services.Session, *memory.PrefStore) {
	t.Helper()

	session := services.NewSession()
	prefs := memory.NewPrefStore()
	voice := &mockVoiceAPI{voices: []domain.Voice{
		{ID: "nova", Name: "Nova", Description: "warm"},
		{ID: "onyx", Name: "Onyx", Description: "deep"},
	}}

	v := NewView(nil, session, prefs, voice)
	v.SetDimensions(80, 24)
	return v, session, prefs
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enterMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func loadVoices(t *testing.T, v *View) *View {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestStyleSelectionUpdatesSessionAndPrefs(t *testing.T) {
	v, session, prefs := newSettingsView(t)

	v, _ = v.Update(enterMsg())
	require.Equal(t, SectionStyle, v.Section())

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())

	assert.Equal(t, domain.StyleCounselor, session.Style())
	assert.Equal(t, "counselor", prefs.GetString(driven.PrefReaderStyle))
	assert.Equal(t, SectionOverview, v.Section())
}

func TestOverlaySelectionIncludesNone(t *testing.T) {
	v, session, prefs := newSettingsView(t)
	session.SetOverlayID(domain.OverlayRain)

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())
	require.Equal(t, SectionOverlay, v.Section())

	// Cursor starts on the current overlay; move up to "None".
	for v.selected > 0 {
		v, _ = v.Update(keyMsg("k"))
	}
	v, _ = v.Update(enterMsg())

	assert.False(t, session.OverlayID().IsValid())
	assert.Equal(t, "", prefs.GetString(driven.PrefOverlayID))
}

func TestVoiceSelectionPersistsPref(t *testing.T) {
	v, _, prefs := newSettingsView(t)
	v = loadVoices(t, v)

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())
	require.Equal(t, SectionVoice, v.Section())

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())

	assert.Equal(t, "onyx", prefs.GetString(driven.PrefVoice))
}

func TestTogglesFlipBooleanPrefs(t *testing.T) {
	v, _, prefs := newSettingsView(t)

	for i := 0; i < 3; i++ {
		v, _ = v.Update(keyMsg("j"))
	}
	v, _ = v.Update(enterMsg())
	assert.True(t, prefs.GetBool(driven.PrefAutoSend))

	v, _ = v.Update(enterMsg())
	assert.False(t, prefs.GetBool(driven.PrefAutoSend))

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())
	assert.True(t, prefs.GetBool(driven.PrefAutoSpeakChat))
}

func TestEscFromOverviewReturnsToBoard(t *testing.T) {
	v, _, _ := newSettingsView(t)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewBoard, changed.View)
	_ = v
}

func TestEscFromSectionReturnsToOverview(t *testing.T) {
	v, _, _ := newSettingsView(t)

	v, _ = v.Update(enterMsg())
	require.Equal(t, SectionStyle, v.Section())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SectionOverview, v.Section())
}

func TestVoiceLoadFailureRendersError(t *testing.T) {
	session := services.NewSession()
	v := NewView(nil, session, memory.NewPrefStore(), &mockVoiceAPI{err: assert.AnError})
	v.SetDimensions(80, 24)
	v = loadVoices(t, v)

	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(keyMsg("j"))
	v, _ = v.Update(enterMsg())

	assert.Contains(t, v.View(), "Could not load voices")
}

// failingPrefStore rejects every write.
type failingPrefStore struct {
	memory.PrefStore
}

func (f *failingPrefStore) Set(_ string, _ any) error {
	return assert.AnError
}

func TestPersistFailureEmitsError(t *testing.T) {
	session := services.NewSession()
	v := NewView(nil, session, &failingPrefStore{}, nil)
	v.SetDimensions(80, 24)

	v, _ = v.Update(enterMsg())
	require.Equal(t, SectionStyle, v.Section())

	v, cmd := v.Update(enterMsg())
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, assert.AnError)
	_ = v
}

func TestOverviewRendersCurrentValues(t *testing.T) {
	v, session, prefs := newSettingsView(t)
	session.SetStyle(domain.StyleShadow)
	require.NoError(t, prefs.Set(driven.PrefVoice, "nova"))

	out := v.View()
	assert.Contains(t, out, "Shadow")
	assert.Contains(t, out, "nova")
	assert.Contains(t, out, "off")
}
