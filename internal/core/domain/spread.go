package domain

// SpreadType identifies a spread layout with fixed slot count and labels.
type SpreadType string

// Available spread types, matching the server's spread identifiers.
const (
	// SpreadOneCard is a single focus card.
	SpreadOneCard SpreadType = "one_card"

	// SpreadThreeCard is the past/present/future layout.
	SpreadThreeCard SpreadType = "three_card"

	// SpreadCelticCross is the full ten-position layout.
	SpreadCelticCross SpreadType = "celtic_cross"
)

// IsValid returns true if the spread type is recognised.
func (s SpreadType) IsValid() bool {
	switch s {
	case SpreadOneCard, SpreadThreeCard, SpreadCelticCross:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SpreadType) String() string {
	return string(s)
}

// Description returns a human-readable description of the spread.
func (s SpreadType) Description() string {
	switch s {
	case SpreadOneCard:
		return "One Card (a single focus)"
	case SpreadThreeCard:
		return "Three Card (past, present, future)"
	case SpreadCelticCross:
		return "Celtic Cross (ten positions)"
	default:
		return unknownDescription
	}
}

// SlotLabels returns the fixed position labels for the spread.
// The slice is freshly allocated; callers may keep it.
func (s SpreadType) SlotLabels() []string {
	switch s {
	case SpreadOneCard:
		return []string{"Focus"}
	case SpreadThreeCard:
		return []string{"Past", "Present", "Future"}
	case SpreadCelticCross:
		return []string{
			"Present", "Challenge", "Foundation", "Recent Past",
			"Crown", "Near Future", "Self", "Environment",
			"Hopes and Fears", "Outcome",
		}
	default:
		return nil
	}
}

// SpreadTypes lists all valid spread types in display order.
func SpreadTypes() []SpreadType {
	return []SpreadType{SpreadOneCard, SpreadThreeCard, SpreadCelticCross}
}

// Slot represents one position in the spread.
// Index and Label are fixed at template creation; only CardID,
// Reversed and Revealed change over the slot's lifetime.
type Slot struct {
	// Index is the stable ordinal within the spread.
	Index int

	// Label is the human-readable position name.
	Label string

	// CardID is the placed card, empty until filled.
	CardID string

	// Reversed is the card orientation, meaningful only once filled.
	Reversed bool

	// Revealed is true once the card's face should render.
	Revealed bool
}

// Filled returns true once a card occupies the slot.
func (s *Slot) Filled() bool {
	return s.CardID != ""
}

// NewSlots builds the empty slot sequence for a spread type.
// Returns nil for an unrecognised spread type.
func NewSlots(spread SpreadType) []Slot {
	labels := spread.SlotLabels()
	if labels == nil {
		return nil
	}
	slots := make([]Slot, len(labels))
	for i, label := range labels {
		slots[i] = Slot{Index: i, Label: label}
	}
	return slots
}

// HapticLevel grades the feedback intensity for a card placement.
type HapticLevel string

// Haptic feedback levels.
const (
	HapticLight  HapticLevel = "light"
	HapticMedium HapticLevel = "medium"
	HapticStrong HapticLevel = "strong"
)

// String returns the string representation.
func (h HapticLevel) String() string {
	return string(h)
}

// HapticTuning maps recogniser confidence to feedback intensity.
// The thresholds are tuned constants with no documented derivation,
// carried as configuration rather than invariants.
type HapticTuning struct {
	// StrongThreshold is the minimum confidence for strong feedback.
	StrongThreshold float64

	// MediumThreshold is the minimum confidence for medium feedback.
	MediumThreshold float64
}

// DefaultHapticTuning returns the stock confidence thresholds.
func DefaultHapticTuning() HapticTuning {
	return HapticTuning{StrongThreshold: 0.8, MediumThreshold: 0.6}
}

// Level maps a confidence value (0-1) to a haptic level.
func (t HapticTuning) Level(confidence float64) HapticLevel {
	switch {
	case confidence >= t.StrongThreshold:
		return HapticStrong
	case confidence >= t.MediumThreshold:
		return HapticMedium
	default:
		return HapticLight
	}
}
