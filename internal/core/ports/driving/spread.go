package driving

import (
	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// PlaceResult reports where a card landed and the feedback it earned.
type PlaceResult struct {
	// SlotIndex is the slot the card was placed into.
	SlotIndex int

	// Haptic is the feedback level derived from recogniser confidence.
	Haptic domain.HapticLevel
}

// SpreadService owns the ordered slot sequence for the current spread.
// Every mutating operation notifies the registered change listener;
// "undo enabled" and "reading enabled" affordances are pure projections
// of AnyFilled and IsComplete, never independently tracked.
type SpreadService interface {
	// NewSpread replaces the slots with the fixed template for the
	// spread type. Fails with domain.ErrInvalidSpreadType.
	NewSpread(spread domain.SpreadType) error

	// Place puts a card into the slot at slotIndex, or into the
	// lowest-index empty slot when slotIndex is nil. Fails with
	// domain.ErrSpreadFull when no empty slot exists. Confidence is
	// advisory only and never affects placement validity.
	Place(cardID string, slotIndex *int, confidence float64) (*PlaceResult, error)

	// ToggleReversed flips the orientation of a filled slot.
	// A no-op on empty or out-of-range slots.
	ToggleReversed(slotIndex int)

	// Undo clears the highest-index filled slot. Returns false when
	// nothing was filled.
	Undo() bool

	// IsComplete reports whether every slot holds a card.
	IsComplete() bool

	// AnyFilled reports whether at least one slot holds a card.
	AnyFilled() bool

	// Slots returns a copy of the current slot sequence.
	Slots() []domain.Slot

	// Slot returns a copy of one slot by index.
	Slot(slotIndex int) (domain.Slot, bool)

	// Placements returns the filled slots as server placements,
	// in slot order.
	Placements() []domain.Placement

	// SpreadType returns the active spread layout.
	SpreadType() domain.SpreadType

	// OnChange registers the listener notified after every mutation.
	OnChange(listener func())
}
