// Package cli provides the cobra command-line interface for Tarot42.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/core/ports/driving"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.1.0"

// Injected services, configured from main via SetServices.
var (
	sessionService      driving.SessionService
	spreadService       driving.SpreadService
	acquisitionService  driving.AcquisitionService
	recorderService     driving.RecorderService
	conversationService driving.ConversationService
	frameSource         driven.FrameSource
	voiceAPI            driven.VoiceAPI
	prefStore           driven.PrefStore
)

// Services aggregates everything the commands need.
type Services struct {
	Session      driving.SessionService
	Spread       driving.SpreadService
	Acquire      driving.AcquisitionService
	Recorder     driving.RecorderService
	Conversation driving.ConversationService
	Frames       driven.FrameSource
	Voice        driven.VoiceAPI
	Prefs        driven.PrefStore
}

// SetServices wires the service implementations into the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	sessionService = s.Session
	spreadService = s.Spread
	acquisitionService = s.Acquire
	recorderService = s.Recorder
	conversationService = s.Conversation
	frameSource = s.Frames
	voiceAPI = s.Voice
	prefStore = s.Prefs
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "tarot42",
	Short: "A tarot reading client for your terminal",
	Long: `Tarot42 is a terminal client for the Tarot42 reading server.

Scan physical cards with a camera, or let the server draw for you, then
receive a generated reading and talk it over with the reader by text or
voice.

Running tarot42 with no subcommand launches the interactive TUI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
