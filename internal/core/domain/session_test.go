package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		expected bool
	}{
		{name: "physical is valid", mode: ModePhysical, expected: true},
		{name: "digital is valid", mode: ModeDigital, expected: true},
		{name: "empty string is invalid", mode: Mode(""), expected: false},
		{name: "unknown mode is invalid", mode: Mode("astral"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

func TestStep_IsValid(t *testing.T) {
	for _, step := range []Step{StepModeSelect, StepAcquire, StepReading, StepChat} {
		assert.True(t, step.IsValid(), step.String())
	}
	assert.False(t, Step("shuffle").IsValid())
}

func TestReaderStyle_IsValid(t *testing.T) {
	for _, style := range ReaderStyles() {
		assert.True(t, style.IsValid(), style.String())
	}
	assert.False(t, ReaderStyle("bard").IsValid())
}

func TestReaderStyle_Description(t *testing.T) {
	for _, style := range ReaderStyles() {
		assert.NotEqual(t, unknownDescription, style.Description())
	}
	assert.Equal(t, unknownDescription, ReaderStyle("bard").Description())
}

func TestOverlayID_IsValid(t *testing.T) {
	for _, overlay := range Overlays() {
		assert.True(t, overlay.IsValid(), overlay.String())
	}
	assert.False(t, OverlayID("SNOW").IsValid())
}

func TestPanelVisibility_IsValid(t *testing.T) {
	for _, vis := range []PanelVisibility{PanelCollapsed, PanelHalf, PanelExpanded} {
		assert.True(t, vis.IsValid(), vis.String())
	}
	assert.False(t, PanelVisibility("pinned").IsValid())
}

func TestMicPhase_IsValid(t *testing.T) {
	for _, phase := range []MicPhase{MicIdle, MicRecording, MicTranscribing} {
		assert.True(t, phase.IsValid(), phase.String())
	}
	assert.False(t, MicPhase("paused").IsValid())
}
