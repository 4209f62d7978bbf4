package domain

const unknownDescription = "Unknown"

// Mode identifies how cards enter the spread.
type Mode string

// Available acquisition modes.
const (
	// ModePhysical acquires cards by scanning physical cards with a camera.
	ModePhysical Mode = "physical"

	// ModeDigital acquires cards via server-side algorithmic draws.
	ModeDigital Mode = "digital"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModePhysical, ModeDigital:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModePhysical:
		return "Physical (scan real cards)"
	case ModeDigital:
		return "Digital (drawn for you)"
	default:
		return unknownDescription
	}
}

// Step identifies which stage of the session is active.
type Step string

// Session steps, in their natural progression order.
const (
	// StepModeSelect is the initial mode/spread selection stage.
	StepModeSelect Step = "mode_select"

	// StepAcquire is the card acquisition stage (scan or draw).
	StepAcquire Step = "acquire"

	// StepReading is the generated-reading stage.
	StepReading Step = "reading"

	// StepChat is the follow-up conversation stage.
	StepChat Step = "chat"
)

// IsValid returns true if the step is recognised.
func (s Step) IsValid() bool {
	switch s {
	case StepModeSelect, StepAcquire, StepReading, StepChat:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Step) String() string {
	return string(s)
}

// ReaderStyle selects the voice of the generated reading.
type ReaderStyle string

// Available reader styles, matching the server's accepted values.
const (
	StyleSeer       ReaderStyle = "seer"
	StyleCounselor  ReaderStyle = "counselor"
	StyleStrategist ReaderStyle = "strategist"
	StyleShadow     ReaderStyle = "shadow"
)

// IsValid returns true if the reader style is recognised.
func (r ReaderStyle) IsValid() bool {
	switch r {
	case StyleSeer, StyleCounselor, StyleStrategist, StyleShadow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r ReaderStyle) String() string {
	return string(r)
}

// Description returns a human-readable description of the style.
func (r ReaderStyle) Description() string {
	switch r {
	case StyleSeer:
		return "Seer (mystical, evocative)"
	case StyleCounselor:
		return "Counselor (gentle, supportive)"
	case StyleStrategist:
		return "Strategist (practical, direct)"
	case StyleShadow:
		return "Shadow (probing, unflinching)"
	default:
		return unknownDescription
	}
}

// ReaderStyles lists all valid reader styles in display order.
func ReaderStyles() []ReaderStyle {
	return []ReaderStyle{StyleSeer, StyleCounselor, StyleStrategist, StyleShadow}
}

// OverlayID identifies a weather overlay applied to the deck.
type OverlayID string

// Overlays defined by the deck.
const (
	OverlayWind      OverlayID = "WIND"
	OverlayRain      OverlayID = "RAIN"
	OverlayThunder   OverlayID = "THUNDER"
	OverlayLightning OverlayID = "LIGHTNING"
	OverlayFire      OverlayID = "FIRE"
	OverlayFog       OverlayID = "FOG"
	OverlayDrought   OverlayID = "DROUGHT"
	OverlayTide      OverlayID = "TIDE"
)

// IsValid returns true if the overlay is recognised.
func (o OverlayID) IsValid() bool {
	switch o {
	case OverlayWind, OverlayRain, OverlayThunder, OverlayLightning,
		OverlayFire, OverlayFog, OverlayDrought, OverlayTide:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o OverlayID) String() string {
	return string(o)
}

// Overlays lists all valid overlays in display order.
func Overlays() []OverlayID {
	return []OverlayID{
		OverlayWind, OverlayRain, OverlayThunder, OverlayLightning,
		OverlayFire, OverlayFog, OverlayDrought, OverlayTide,
	}
}

// PanelVisibility is the explicit three-state chat panel machine.
type PanelVisibility string

// Chat panel visibility states.
const (
	// PanelCollapsed hides the conversation panel.
	PanelCollapsed PanelVisibility = "collapsed"

	// PanelHalf shows the conversation panel alongside the board.
	PanelHalf PanelVisibility = "half"

	// PanelExpanded gives the conversation panel the full surface.
	PanelExpanded PanelVisibility = "expanded"
)

// IsValid returns true if the visibility state is recognised.
func (p PanelVisibility) IsValid() bool {
	switch p {
	case PanelCollapsed, PanelHalf, PanelExpanded:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PanelVisibility) String() string {
	return string(p)
}

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles.
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in the conversation history.
type ChatMessage struct {
	// Role is who authored the message.
	Role ChatRole

	// Text is the message body.
	Text string
}
