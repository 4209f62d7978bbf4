package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wattleworks/tarot42-cli/internal/core/domain"
)

var (
	drawReversed bool
	drawJSON     bool
)

var drawCmd = &cobra.Command{
	Use:   "draw [spread]",
	Short: "Draw a spread without entering the TUI",
	Long: `Performs a one-shot algorithmic draw and prints the positions.

The spread argument is one of: one_card, three_card, celtic_cross.
Defaults to one_card.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDraw,
}

func init() {
	drawCmd.Flags().BoolVar(&drawReversed, "reversed", true, "allow reversed cards")
	drawCmd.Flags().BoolVar(&drawJSON, "json", false, "output positions as JSON")
	rootCmd.AddCommand(drawCmd)
}

func runDraw(cmd *cobra.Command, args []string) error {
	if sessionService == nil || spreadService == nil || acquisitionService == nil {
		return errors.New("services not configured")
	}

	spreadType := domain.SpreadOneCard
	if len(args) == 1 {
		spreadType = domain.SpreadType(args[0])
		if !spreadType.IsValid() {
			return fmt.Errorf("unknown spread %q", args[0])
		}
	}

	sessionService.SetMode(domain.ModeDigital)
	if err := sessionService.SetSpreadType(spreadType); err != nil {
		return err
	}
	if err := spreadService.NewSpread(spreadType); err != nil {
		return err
	}

	if err := acquisitionService.ResolveDraw(cmd.Context(), drawReversed); err != nil {
		return fmt.Errorf("draw failed: %w", err)
	}

	slots := spreadService.Slots()
	if drawJSON {
		return outputDrawJSON(cmd, slots)
	}
	return outputDrawTable(cmd, spreadType, slots)
}

type drawOutput struct {
	Slot     string `json:"slot"`
	CardID   string `json:"card_id"`
	Reversed bool   `json:"reversed"`
}

func outputDrawJSON(cmd *cobra.Command, slots []domain.Slot) error {
	out := make([]drawOutput, 0, len(slots))
	for _, slot := range slots {
		out = append(out, drawOutput{
			Slot:     slot.Label,
			CardID:   slot.CardID,
			Reversed: slot.Reversed,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDrawTable(cmd *cobra.Command, spreadType domain.SpreadType, slots []domain.Slot) error {
	cmd.Printf("%s\n\n", spreadType.Description())
	for _, slot := range slots {
		orientation := ""
		if slot.Reversed {
			orientation = " (reversed)"
		}
		cmd.Printf("  %-16s %s%s\n", slot.Label, slot.CardID, orientation)
	}
	return nil
}
