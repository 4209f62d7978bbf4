package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the available synthesis voices",
	RunE:  runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)
}

func runVoices(cmd *cobra.Command, _ []string) error {
	if voiceAPI == nil {
		return errors.New("voice service not configured")
	}

	voices, err := voiceAPI.Voices(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing voices: %w", err)
	}

	if len(voices) == 0 {
		cmd.Println("No voices available.")
		return nil
	}

	for _, voice := range voices {
		if voice.Description != "" {
			cmd.Printf("  %-10s %s - %s\n", voice.ID, voice.Name, voice.Description)
		} else {
			cmd.Printf("  %-10s %s\n", voice.ID, voice.Name)
		}
	}
	return nil
}
