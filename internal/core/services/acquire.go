package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Acquirer implements the driving port.
var _ driving.AcquisitionService = (*Acquirer)(nil)

// Acquirer routes acquired cards: a normal acquisition places into the
// spread, while an armed clarifier target diverts the card into a
// clarifier sub-reading that annotates (never occupies) a slot.
type Acquirer struct {
	session driving.SessionService
	spread  driving.SpreadService
	scan    driven.ScanAPI
	reading driven.ReadingAPI

	mu sync.Mutex

	// clarifyTarget is the armed slot index; -1 when disarmed.
	// At most one target exists at a time.
	clarifyTarget int

	// annotations maps slot index to its attached clarifier note.
	annotations map[int]domain.ClarifierNote
}

// NewAcquirer creates an acquisition resolver.
func NewAcquirer(
	session driving.SessionService,
	spread driving.SpreadService,
	scan driven.ScanAPI,
	reading driven.ReadingAPI,
) *Acquirer {
	return &Acquirer{
		session:       session,
		spread:        spread,
		scan:          scan,
		reading:       reading,
		clarifyTarget: -1,
		annotations:   make(map[int]domain.ClarifierNote),
	}
}

// Reset clears the clarifier target and all annotations.
// Registered as a session reset hook.
func (a *Acquirer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clarifyTarget = -1
	a.annotations = make(map[int]domain.ClarifierNote)
}

// ArmClarify marks a filled slot as the clarifier target. Arming always
// replaces any prior target so at most one slot is marked.
func (a *Acquirer) ArmClarify(slotIndex int) error {
	slot, ok := a.spread.Slot(slotIndex)
	if !ok {
		return domain.ErrInvalidSlot
	}
	if !slot.Filled() {
		return domain.ErrSlotEmpty
	}

	a.mu.Lock()
	a.clarifyTarget = slotIndex
	a.mu.Unlock()

	logger.Debug("acquire: clarifier armed on slot %d", slotIndex)
	return nil
}

// DisarmClarify clears the clarifier target unconditionally.
func (a *Acquirer) DisarmClarify() {
	a.mu.Lock()
	a.clarifyTarget = -1
	a.mu.Unlock()
}

// ClarifyTarget returns the armed slot index, if any.
func (a *Acquirer) ClarifyTarget() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.clarifyTarget < 0 {
		return 0, false
	}
	return a.clarifyTarget, true
}

// Annotations returns the clarifier notes attached so far, in slot order.
func (a *Acquirer) Annotations() []domain.ClarifierNote {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ClarifierNote, 0, len(a.annotations))
	for _, note := range a.annotations {
		out = append(out, note)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotIndex < out[j].SlotIndex })
	return out
}

// ResolveScan recognises a frame and routes the result. A recognition
// miss leaves the spread untouched and is not an error.
func (a *Acquirer) ResolveScan(ctx context.Context, image []byte, filename string) (*driving.ScanOutcome, error) {
	result, err := a.scan.Scan(ctx, image, filename)
	if err != nil {
		return nil, fmt.Errorf("scanning frame: %w", err)
	}
	if !result.OK {
		logger.Debug("acquire: no match (%d raw matches)", result.Matches)
		return &driving.ScanOutcome{Kind: driving.ScanMiss}, nil
	}
	return a.resolveCard(ctx, result.CardID, nil, result.Confidence)
}

// ResolveDraw draws cards for the empty slots and fills them by
// position index. With a clarifier target armed, a single card is
// drawn and routed to the clarifier resolution instead.
func (a *Acquirer) ResolveDraw(ctx context.Context, allowReversed bool) error {
	readingID, err := a.ensureReading(ctx)
	if err != nil {
		return err
	}

	if target, armed := a.ClarifyTarget(); armed {
		positions, err := a.reading.DrawCards(ctx, readingID, 1, false, []string{"Clarifier"})
		if err != nil {
			return fmt.Errorf("drawing clarifier: %w", err)
		}
		if len(positions) == 0 {
			return fmt.Errorf("drawing clarifier: empty draw")
		}
		_, err = a.resolveClarifier(ctx, target, positions[0].CardID)
		return err
	}

	empty := make([]domain.Slot, 0)
	for _, slot := range a.spread.Slots() {
		if !slot.Filled() {
			empty = append(empty, slot)
		}
	}
	if len(empty) == 0 {
		return domain.ErrSpreadFull
	}

	labels := make([]string, len(empty))
	for i, slot := range empty {
		labels[i] = slot.Label
	}

	positions, err := a.reading.DrawCards(ctx, readingID, len(empty), allowReversed, labels)
	if err != nil {
		return fmt.Errorf("drawing cards: %w", err)
	}
	if len(positions) != len(empty) {
		return fmt.Errorf("drawing cards: got %d positions for %d slots", len(positions), len(empty))
	}

	// Algorithmic draws fill by position index, not first-empty.
	for i, pos := range positions {
		idx := empty[i].Index
		if _, err := a.spread.Place(pos.CardID, &idx, 0); err != nil {
			return fmt.Errorf("placing drawn card %s: %w", pos.CardID, err)
		}
		if pos.Reversed {
			a.spread.ToggleReversed(idx)
		}
	}
	return nil
}

// ensureReading returns the session's reading identifier, starting an
// algorithmic-draw reading on first use.
func (a *Acquirer) ensureReading(ctx context.Context) (string, error) {
	if id := a.session.ReadingID(); id != "" {
		return id, nil
	}
	id, err := a.reading.StartReading(ctx, a.session.Mode(), a.session.SpreadType())
	if err != nil {
		return "", fmt.Errorf("starting reading: %w", err)
	}
	a.session.SetReadingID(id)
	return id, nil
}

// resolveCard routes an acquired card: clarifier resolution when a
// target is armed, placement otherwise.
func (a *Acquirer) resolveCard(ctx context.Context, cardID string, slotIndex *int, confidence float64) (*driving.ScanOutcome, error) {
	if target, armed := a.ClarifyTarget(); armed {
		note, err := a.resolveClarifier(ctx, target, cardID)
		if err != nil {
			return nil, err
		}
		return &driving.ScanOutcome{
			Kind:       driving.ScanClarified,
			CardID:     cardID,
			Confidence: confidence,
			Clarifier:  note,
		}, nil
	}

	placed, err := a.spread.Place(cardID, slotIndex, confidence)
	if err != nil {
		return nil, err
	}
	return &driving.ScanOutcome{
		Kind:       driving.ScanPlaced,
		CardID:     cardID,
		Confidence: confidence,
		Placed:     placed,
	}, nil
}

// resolveClarifier issues the clarifier sub-reading and attaches the
// note. On failure the target stays armed so the user may retry; on
// success the target is cleared unconditionally.
func (a *Acquirer) resolveClarifier(ctx context.Context, target int, clarifierID string) (*domain.ClarifierNote, error) {
	slot, ok := a.spread.Slot(target)
	if !ok || !slot.Filled() {
		// The target slot was undone since arming; nothing to clarify.
		a.DisarmClarify()
		return nil, domain.ErrSlotEmpty
	}

	interpretation, err := a.reading.Clarify(ctx, domain.ClarifyRequest{
		OriginalCardID:   slot.CardID,
		OriginalPosition: slot.Label,
		ClarifierCardID:  clarifierID,
		Spread:           a.spread.SpreadType(),
		Style:            a.session.Style(),
		SessionID:        a.session.SessionID(),
	})
	if err != nil {
		return nil, fmt.Errorf("clarifying slot %d: %w", target, err)
	}

	note := domain.ClarifierNote{
		SlotIndex:      target,
		CardID:         clarifierID,
		Interpretation: interpretation,
	}

	a.mu.Lock()
	a.annotations[target] = note
	a.clarifyTarget = -1
	a.mu.Unlock()

	logger.Debug("acquire: clarifier %s attached to slot %d", clarifierID, target)
	return &note, nil
}
