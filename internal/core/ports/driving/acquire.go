package driving

import (
	"context"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

// ScanOutcomeKind classifies the result of resolving a scan.
type ScanOutcomeKind int

const (
	// ScanMiss means the recogniser found no card; the spread is
	// untouched and the user should retry.
	ScanMiss ScanOutcomeKind = iota

	// ScanPlaced means the card was placed into the spread.
	ScanPlaced

	// ScanClarified means the card resolved an armed clarifier target.
	ScanClarified
)

// ScanOutcome is the result of resolving a recognised card.
type ScanOutcome struct {
	// Kind classifies the outcome.
	Kind ScanOutcomeKind

	// CardID is the recognised card, empty on a miss.
	CardID string

	// Confidence is the recogniser confidence, advisory only.
	Confidence float64

	// Placed describes the placement for ScanPlaced outcomes.
	Placed *PlaceResult

	// Clarifier is the attached annotation for ScanClarified outcomes.
	Clarifier *domain.ClarifierNote
}

// AcquisitionService turns recognised or drawn cards into placements or
// clarifier resolutions, depending on whether a clarifier target is armed.
type AcquisitionService interface {
	// ResolveScan recognises a frame and routes the result.
	ResolveScan(ctx context.Context, image []byte, filename string) (*ScanOutcome, error)

	// ResolveDraw draws cards for every empty slot and fills them by
	// position index. A draw while a clarifier target is armed routes
	// the first drawn card to the clarifier resolution instead.
	ResolveDraw(ctx context.Context, allowReversed bool) error

	// ArmClarify marks the slot as the clarifier target. Only valid on
	// a filled slot; at most one target is armed at a time and arming
	// replaces any prior target.
	ArmClarify(slotIndex int) error

	// DisarmClarify clears the clarifier target unconditionally.
	DisarmClarify()

	// ClarifyTarget returns the armed slot index, if any.
	ClarifyTarget() (int, bool)

	// Annotations returns the clarifier notes attached so far,
	// in slot order.
	Annotations() []domain.ClarifierNote
}
