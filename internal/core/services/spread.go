package services

import (
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Spread implements the driving port.
var _ driving.SpreadService = (*Spread)(nil)

// Spread owns the ordered slot sequence for the current layout.
// Slot count and labels are fixed at template creation; only the
// card, orientation and reveal flags mutate afterwards.
type Spread struct {
	mu sync.Mutex

	spreadType domain.SpreadType
	slots      []domain.Slot

	haptics driven.Haptics
	tuning  domain.HapticTuning

	listener func()
}

// NewSpread creates a spread model with the one-card template active.
// Haptics may be nil; feedback is then skipped.
func NewSpread(haptics driven.Haptics, tuning domain.HapticTuning) *Spread {
	return &Spread{
		spreadType: domain.SpreadOneCard,
		slots:      domain.NewSlots(domain.SpreadOneCard),
		haptics:    haptics,
		tuning:     tuning,
	}
}

// NewSpread replaces the slots with the fixed template for the type.
func (s *Spread) NewSpread(spread domain.SpreadType) error {
	slots := domain.NewSlots(spread)
	if slots == nil {
		return domain.ErrInvalidSpreadType
	}

	s.mu.Lock()
	s.spreadType = spread
	s.slots = slots
	s.mu.Unlock()

	logger.Debug("spread: new %s layout, %d slots", spread, len(slots))
	s.notify()
	return nil
}

// Place puts a card into the given slot, or the lowest-index empty slot
// when slotIndex is nil. Confidence maps to a haptic level and never
// affects placement validity.
func (s *Spread) Place(cardID string, slotIndex *int, confidence float64) (*driving.PlaceResult, error) {
	s.mu.Lock()
	target := -1
	switch {
	case slotIndex != nil:
		if *slotIndex < 0 || *slotIndex >= len(s.slots) {
			s.mu.Unlock()
			return nil, domain.ErrInvalidSlot
		}
		if s.slots[*slotIndex].Filled() {
			s.mu.Unlock()
			return nil, domain.ErrSlotOccupied
		}
		target = *slotIndex
	default:
		for i := range s.slots {
			if !s.slots[i].Filled() {
				target = i
				break
			}
		}
		if target < 0 {
			s.mu.Unlock()
			return nil, domain.ErrSpreadFull
		}
	}

	s.slots[target].CardID = cardID
	s.slots[target].Reversed = false
	s.slots[target].Revealed = true
	level := s.tuning.Level(confidence)
	haptics := s.haptics
	s.mu.Unlock()

	if haptics != nil {
		haptics.Pulse(level)
	}
	logger.Debug("spread: placed %s into slot %d (%s)", cardID, target, level)
	s.notify()
	return &driving.PlaceResult{SlotIndex: target, Haptic: level}, nil
}

// ToggleReversed flips the orientation of a filled slot.
// A no-op on empty or out-of-range slots.
func (s *Spread) ToggleReversed(slotIndex int) {
	s.mu.Lock()
	if slotIndex < 0 || slotIndex >= len(s.slots) || !s.slots[slotIndex].Filled() {
		s.mu.Unlock()
		return
	}
	s.slots[slotIndex].Reversed = !s.slots[slotIndex].Reversed
	s.mu.Unlock()
	s.notify()
}

// Undo clears the highest-index filled slot. LIFO: a lower-index slot
// is never touched while a higher one is filled.
func (s *Spread) Undo() bool {
	s.mu.Lock()
	target := -1
	for i := len(s.slots) - 1; i >= 0; i-- {
		if s.slots[i].Filled() {
			target = i
			break
		}
	}
	if target < 0 {
		s.mu.Unlock()
		return false
	}
	s.slots[target].CardID = ""
	s.slots[target].Reversed = false
	s.slots[target].Revealed = false
	s.mu.Unlock()

	logger.Debug("spread: undo cleared slot %d", target)
	s.notify()
	return true
}

// IsComplete reports whether every slot holds a card.
func (s *Spread) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if !s.slots[i].Filled() {
			return false
		}
	}
	return true
}

// AnyFilled reports whether at least one slot holds a card.
func (s *Spread) AnyFilled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].Filled() {
			return true
		}
	}
	return false
}

// Slots returns a copy of the current slot sequence.
func (s *Spread) Slots() []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Slot returns a copy of one slot by index.
func (s *Spread) Slot(slotIndex int) (domain.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slotIndex < 0 || slotIndex >= len(s.slots) {
		return domain.Slot{}, false
	}
	return s.slots[slotIndex], true
}

// Placements returns the filled slots as server placements, in slot order.
func (s *Spread) Placements() []domain.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Placement, 0, len(s.slots))
	for i := range s.slots {
		if !s.slots[i].Filled() {
			continue
		}
		out = append(out, domain.Placement{
			SlotIndex: s.slots[i].Index,
			SlotLabel: s.slots[i].Label,
			CardID:    s.slots[i].CardID,
			Reversed:  s.slots[i].Reversed,
		})
	}
	return out
}

// SpreadType returns the active spread layout.
func (s *Spread) SpreadType() domain.SpreadType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spreadType
}

// OnChange registers the listener notified after every mutation.
func (s *Spread) OnChange(listener func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = listener
}

// notify invokes the change listener outside the lock.
func (s *Spread) notify() {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener()
	}
}
